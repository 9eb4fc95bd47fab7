package types

// TradeRecord is one normalized row from the remote trade store. Keys arrive
// from the sheet backend in varying case; sheet.Normalize folds them to
// lowercase before this struct is populated.
type TradeRecord struct {
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	CreatedAt  string `json:"createdat,omitempty"`
	Instrument string `json:"instrument"`
	Exchange   string `json:"exchange"`
	BuySell    string `json:"buysell"`
	OptionType string `json:"optiontype"`
	Status     string `json:"status"`

	StrikePrice   float64 `json:"strikeprice"`
	EntryPrice    float64 `json:"entryprice"`
	ExitPrice     float64 `json:"exitprice"`
	Lots          float64 `json:"lots"`
	LotSize       float64 `json:"lotsize"`
	Quantity      float64 `json:"quantity"`
	CapitalBefore float64 `json:"capitalbefore"`
	CapitalUsed   float64 `json:"capitalused"`
	MaxLoss       float64 `json:"maxloss"`
	Brokerage     float64 `json:"brokerage"` // total charges live under the brokerage column
	GrossPnl      float64 `json:"grosspnl"`
	NetPnl        float64 `json:"netpnl"`

	ROI         string `json:"roi"`
	CloseReason string `json:"closereason"`
}

// SavePayload is the flat body posted to the store's saveTrade action.
// Manual charge adjustments reuse the same shape with the trade fields zeroed.
type SavePayload struct {
	Action        string  `json:"action"`
	Instrument    string  `json:"instrument"`
	Exchange      string  `json:"exchange"`
	BuySell       string  `json:"buySell"`
	OptionType    string  `json:"optionType"`
	StrikePrice   float64 `json:"strikePrice"`
	EntryPrice    float64 `json:"entryPrice"`
	ExitPrice     float64 `json:"exitPrice"`
	Lots          float64 `json:"lots"`
	LotSize       float64 `json:"lotSize"`
	Quantity      float64 `json:"quantity"`
	CapitalBefore float64 `json:"capitalBefore"`
	CapitalUsed   float64 `json:"capitalUsed"`
	SLType        string  `json:"slType"`
	SLValue       float64 `json:"slValue"`
	SLTrigger     float64 `json:"slTrigger"`
	MaxLoss       float64 `json:"maxLoss"`
	Brokerage     float64 `json:"brokerage"`
	GrossPnl      float64 `json:"grossPnl"`
	NetPnl        float64 `json:"netPnl"`
	ROI           string  `json:"roi"`
	Status        string  `json:"status"`
	CloseReason   string  `json:"closeReason"`
}

type SeriesPoint struct {
	Label      string  `json:"label"`
	Cumulative float64 `json:"cumulative"`
}

type DashboardSummary struct {
	TotalNetPnl    float64       `json:"total_net_pnl"`
	TotalGrossPnl  float64       `json:"total_gross_pnl"`
	TotalCharges   float64       `json:"total_charges"`
	WinCount       int           `json:"win_count"`
	LossCount      int           `json:"loss_count"`
	TotalTrades    int           `json:"total_trades"`
	WinRatePct     float64       `json:"win_rate_pct"`
	MaxProfit      float64       `json:"max_profit"`
	MaxLoss        float64       `json:"max_loss"`
	CurrentCapital float64       `json:"current_capital"`
	Series         []SeriesPoint `json:"series"`
}
