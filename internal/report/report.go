package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"trade-pnl-tracker/internal/types"
)

type Range string

const (
	RangeAll   Range = "all"
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange maps a query value to a Range, defaulting to all.
func ParseRange(s string) Range {
	switch Range(strings.ToLower(strings.TrimSpace(s))) {
	case RangeToday:
		return RangeToday
	case RangeWeek:
		return RangeWeek
	case RangeMonth:
		return RangeMonth
	default:
		return RangeAll
	}
}

var recordLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
}

// recordTime resolves a record's trade time, preferring the server timestamp
// over the trade date. Zero time when neither parses.
func recordTime(r types.TradeRecord) time.Time {
	for _, raw := range []string{r.CreatedAt, r.Date} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range recordLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// Filter drops records outside the requested range, relative to now. Week is
// the last 7 days inclusive; month means same calendar month and year.
func Filter(records []types.TradeRecord, rng Range, now time.Time) []types.TradeRecord {
	if rng == RangeAll {
		return records
	}
	out := make([]types.TradeRecord, 0, len(records))
	for _, r := range records {
		t := recordTime(r)
		if t.IsZero() {
			continue
		}
		switch rng {
		case RangeToday:
			if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
				out = append(out, r)
			}
		case RangeWeek:
			if !t.Before(now.AddDate(0, 0, -7)) {
				out = append(out, r)
			}
		case RangeMonth:
			if t.Year() == now.Year() && t.Month() == now.Month() {
				out = append(out, r)
			}
		}
	}
	return out
}

// Summarize folds records into the dashboard statistics in a single pass.
// Callers must pass records newest-first for CurrentCapital to mean "latest
// known capital"; the cumulative series re-sorts internally and does not
// depend on input order.
func Summarize(records []types.TradeRecord) types.DashboardSummary {
	var s types.DashboardSummary

	for _, r := range records {
		s.TotalNetPnl += r.NetPnl
		s.TotalGrossPnl += r.GrossPnl
		s.TotalCharges += r.Brokerage

		// A flat trade counts toward the total but is neither win nor loss.
		if r.NetPnl > 0 {
			s.WinCount++
			if r.NetPnl > s.MaxProfit {
				s.MaxProfit = r.NetPnl
			}
		} else if r.NetPnl < 0 {
			s.LossCount++
			if r.NetPnl < s.MaxLoss {
				s.MaxLoss = r.NetPnl
			}
		}
	}

	s.TotalTrades = len(records)
	if s.TotalTrades > 0 {
		rate := float64(s.WinCount) / float64(s.TotalTrades) * 100
		s.WinRatePct = math.Round(rate*10) / 10
	}

	for _, r := range records {
		if r.CapitalBefore > 0 {
			s.CurrentCapital = r.CapitalBefore
			break
		}
	}

	s.Series = CumulativeSeries(records)
	return s
}

// SortNewestFirst orders records descending by server timestamp (falling
// back to trade date), the order Summarize expects for CurrentCapital.
func SortNewestFirst(records []types.TradeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return recordTime(records[j]).Before(recordTime(records[i]))
	})
}

// CumulativeSeries accumulates net P&L oldest-first, regardless of the order
// records arrived in. Output length always equals input length.
func CumulativeSeries(records []types.TradeRecord) []types.SeriesPoint {
	sorted := make([]types.TradeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return recordTime(sorted[i]).Before(recordTime(sorted[j]))
	})

	series := make([]types.SeriesPoint, 0, len(sorted))
	var cumulative float64
	for _, r := range sorted {
		cumulative += r.NetPnl
		series = append(series, types.SeriesPoint{
			Label:      strings.TrimSpace(r.Date + " " + r.Time),
			Cumulative: cumulative,
		})
	}
	return series
}
