package economics

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// TradeInput describes a single options/futures trade as entered on the
// calculator form. Blank or invalid fields are parsed to zero upstream
// (see ParseAmount), so a zero here always means "not filled in".
type TradeInput struct {
	Instrument     Instrument
	Side           Side
	Lots           float64
	LotSize        int
	EntryPrice     float64
	ExitPrice      float64 // 0 = position still open
	StopLossPrice  float64
	IncludeCharges bool
}

// TradeEconomics is the full derived result for one trade. It is fully
// determined by (TradeInput, ChargeRates) and never mutated after Compute.
type TradeEconomics struct {
	Quantity        float64 `json:"quantity"`
	Points          float64 `json:"points"`
	GrossPnl        float64 `json:"grossPnl"`
	RiskAmount      float64 `json:"riskAmount"`
	CapitalRequired float64 `json:"capitalRequired"`

	BrokerageFee float64 `json:"brokerageFee"`
	STT          float64 `json:"stt"`
	TxnCharge    float64 `json:"txnCharge"`
	GST          float64 `json:"gst"`
	StampDuty    float64 `json:"stampDuty"`
	SEBIFees     float64 `json:"sebiFees"`
	TotalCharges float64 `json:"totalCharges"`

	NetPnl         float64 `json:"netPnl"`
	BreakEvenPrice float64 `json:"breakEvenPrice"`
	ROIPct         float64 `json:"roiPct"`
	Status         Status  `json:"status"`
}

// Compute derives the complete trade economics for one trade. It is a total
// function: a partially-filled form is a normal intermediate state, so
// missing values contribute nothing instead of failing.
func Compute(in TradeInput, rates ChargeRates) TradeEconomics {
	isBuy := in.Side != SideSell

	qty := in.Lots * float64(in.LotSize)

	dir := 1.0
	if !isBuy {
		dir = -1.0
	}
	points := (in.ExitPrice - in.EntryPrice) * dir
	gross := points * qty

	// Not clamped: a stop beyond entry on the profitable side yields a
	// negative risk amount.
	var risk float64
	if in.StopLossPrice > 0 && in.EntryPrice > 0 {
		riskPoints := in.EntryPrice - in.StopLossPrice
		if !isBuy {
			riskPoints = in.StopLossPrice - in.EntryPrice
		}
		risk = riskPoints * qty
	}

	capital := in.EntryPrice * qty

	out := TradeEconomics{
		Quantity:        qty,
		Points:          points,
		GrossPnl:        gross,
		RiskAmount:      risk,
		CapitalRequired: capital,
		Status:          StatusOpen,
	}
	if in.ExitPrice > 0 {
		out.Status = StatusClosed
	}

	// An open position has no realized charges yet, so the whole block is
	// gated on a positive exit as well as entry and quantity.
	if in.IncludeCharges && qty > 0 && in.EntryPrice > 0 && in.ExitPrice > 0 {
		turnover := (in.EntryPrice + in.ExitPrice) * qty

		// One entry order plus one exit order.
		out.BrokerageFee = rates.BrokeragePerOrder * 2

		// STT on the sell leg only, stamp duty on the buy leg only.
		sellValue := in.EntryPrice * qty
		buyValue := in.ExitPrice * qty
		if isBuy {
			sellValue, buyValue = buyValue, sellValue
		}
		out.STT = sellValue * rates.STTPct / 100
		out.TxnCharge = turnover * rates.TxnChargePct / 100

		// GST applies to brokerage and exchange charges only, never to
		// STT, stamp duty, or SEBI fees.
		out.GST = (out.BrokerageFee + out.TxnCharge) * rates.GSTPct / 100
		out.StampDuty = buyValue * rates.StampDutyPct / 100
		out.SEBIFees = turnover * rates.SEBIFeesPct / 100

		out.TotalCharges = out.BrokerageFee + out.STT + out.TxnCharge +
			out.GST + out.StampDuty + out.SEBIFees
	}

	out.NetPnl = gross - out.TotalCharges

	var beOffset float64
	if qty > 0 {
		beOffset = out.TotalCharges / qty
	}
	if isBuy {
		out.BreakEvenPrice = in.EntryPrice + beOffset
	} else {
		out.BreakEvenPrice = in.EntryPrice - beOffset
	}

	if capital > 0 {
		out.ROIPct = out.NetPnl / capital * 100
	}

	return out
}
