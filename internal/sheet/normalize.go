package sheet

import (
	"fmt"
	"strings"

	"trade-pnl-tracker/internal/economics"
	"trade-pnl-tracker/internal/types"
)

// Normalize folds raw store rows into TradeRecords. Sheet headers vary in
// case between deployments, so every key is lowercased first. Rows whose
// date is empty or echoes the header label itself are not data and are
// dropped.
func Normalize(rows []map[string]any) []types.TradeRecord {
	out := make([]types.TradeRecord, 0, len(rows))
	for _, row := range rows {
		folded := make(map[string]any, len(row))
		for k, v := range row {
			folded[strings.ToLower(k)] = v
		}

		date := asString(folded["date"])
		if date == "" || date == "Date" {
			continue
		}

		out = append(out, types.TradeRecord{
			Date:          date,
			Time:          asString(folded["time"]),
			CreatedAt:     asString(folded["createdat"]),
			Instrument:    asString(folded["instrument"]),
			Exchange:      asString(folded["exchange"]),
			BuySell:       asString(folded["buysell"]),
			OptionType:    asString(folded["optiontype"]),
			Status:        asString(folded["status"]),
			StrikePrice:   asFloat(folded["strikeprice"]),
			EntryPrice:    asFloat(folded["entryprice"]),
			ExitPrice:     asFloat(folded["exitprice"]),
			Lots:          asFloat(folded["lots"]),
			LotSize:       asFloat(folded["lotsize"]),
			Quantity:      asFloat(folded["quantity"]),
			CapitalBefore: asFloat(folded["capitalbefore"]),
			CapitalUsed:   asFloat(folded["capitalused"]),
			MaxLoss:       asFloat(folded["maxloss"]),
			Brokerage:     asFloat(folded["brokerage"]),
			GrossPnl:      asFloat(folded["grosspnl"]),
			NetPnl:        asFloat(folded["netpnl"]),
			ROI:           asString(folded["roi"]),
			CloseReason:   asString(folded["closereason"]),
		})
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), ".")
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// asFloat applies the blank-field policy to cell values: sheets return
// numbers, numeric strings, or empty strings interchangeably.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return economics.ParseAmount(n)
	default:
		return 0
	}
}
