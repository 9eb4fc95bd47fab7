package report

import (
	"math"
	"testing"
	"time"

	"trade-pnl-tracker/internal/types"
)

func rec(date string, netPnl float64) types.TradeRecord {
	return types.TradeRecord{Date: date, NetPnl: netPnl}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"today", RangeToday},
		{"WEEK", RangeWeek},
		{" month ", RangeMonth},
		{"all", RangeAll},
		{"", RangeAll},
		{"bogus", RangeAll},
	}
	for _, tt := range tests {
		if got := ParseRange(tt.in); got != tt.want {
			t.Errorf("ParseRange(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFilterToday(t *testing.T) {
	now := time.Date(2023, 12, 16, 14, 30, 0, 0, time.UTC)
	records := []types.TradeRecord{
		rec("2023-12-16", 100),
		rec("2023-12-15", 200),
	}

	got := Filter(records, RangeToday, now)
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	if got[0].Date != "2023-12-16" {
		t.Errorf("Expected today's record, got %s", got[0].Date)
	}
}

func TestFilterWeek(t *testing.T) {
	now := time.Date(2023, 12, 16, 0, 0, 0, 0, time.UTC)
	records := []types.TradeRecord{
		rec("2023-12-16", 1),
		rec("2023-12-09", 2), // exactly 7 days back, inclusive
		rec("2023-12-08", 3),
	}

	got := Filter(records, RangeWeek, now)
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
}

func TestFilterMonth(t *testing.T) {
	now := time.Date(2023, 12, 16, 0, 0, 0, 0, time.UTC)
	records := []types.TradeRecord{
		rec("2023-12-01", 1),
		rec("2023-11-30", 2),
		rec("2022-12-16", 3), // same month, previous year
	}

	got := Filter(records, RangeMonth, now)
	if len(got) != 1 || got[0].Date != "2023-12-01" {
		t.Fatalf("Expected only the same-month-and-year record, got %+v", got)
	}
}

func TestFilterAllKeepsUnparseable(t *testing.T) {
	records := []types.TradeRecord{rec("not a date", 1)}
	if got := Filter(records, RangeAll, time.Now()); len(got) != 1 {
		t.Errorf("Range all must pass everything through, got %d records", len(got))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.WinRatePct != 0 || s.MaxProfit != 0 || s.MaxLoss != 0 || s.CurrentCapital != 0 {
		t.Errorf("Expected zeroed summary for empty input, got %+v", s)
	}
	if len(s.Series) != 0 {
		t.Errorf("Expected empty series, got %d points", len(s.Series))
	}
}

func TestSummarizeCounts(t *testing.T) {
	records := []types.TradeRecord{
		{Date: "2023-12-16", NetPnl: 500, GrossPnl: 520, Brokerage: 20},
		{Date: "2023-12-15", NetPnl: -200, GrossPnl: -180, Brokerage: 20},
		{Date: "2023-12-14", NetPnl: 0, GrossPnl: 0, Brokerage: 0},
	}

	s := Summarize(records)
	if s.TotalNetPnl != 300 {
		t.Errorf("Expected total net 300, got %f", s.TotalNetPnl)
	}
	if s.TotalGrossPnl != 340 {
		t.Errorf("Expected total gross 340, got %f", s.TotalGrossPnl)
	}
	if s.TotalCharges != 40 {
		t.Errorf("Expected total charges 40, got %f", s.TotalCharges)
	}
	if s.WinCount != 1 || s.LossCount != 1 {
		t.Errorf("Expected 1 win and 1 loss, got %d/%d", s.WinCount, s.LossCount)
	}
	// The flat trade counts toward the total but neither side.
	if s.TotalTrades != 3 {
		t.Errorf("Expected 3 total trades, got %d", s.TotalTrades)
	}
	if math.Abs(s.WinRatePct-33.3) > 1e-9 {
		t.Errorf("Expected win rate 33.3, got %f", s.WinRatePct)
	}
	if s.MaxProfit != 500 || s.MaxLoss != -200 {
		t.Errorf("Expected max profit 500 and max loss -200, got %f/%f", s.MaxProfit, s.MaxLoss)
	}
}

func TestSummarizeAllLosing(t *testing.T) {
	records := []types.TradeRecord{
		rec("2023-12-16", -100),
		rec("2023-12-15", -50),
	}

	s := Summarize(records)
	if s.MaxProfit != 0 {
		t.Errorf("Expected max profit 0 for an all-losing set, got %f", s.MaxProfit)
	}
	if s.MaxLoss != -100 {
		t.Errorf("Expected max loss -100, got %f", s.MaxLoss)
	}
}

func TestSummarizeCurrentCapital(t *testing.T) {
	records := []types.TradeRecord{
		{Date: "2023-12-16", CapitalBefore: 0},
		{Date: "2023-12-15", CapitalBefore: 50000},
		{Date: "2023-12-14", CapitalBefore: 42000},
	}

	s := Summarize(records)
	if s.CurrentCapital != 50000 {
		t.Errorf("Expected capital from first record with capital, got %f", s.CurrentCapital)
	}
}

func TestCumulativeSeriesOrderIndependent(t *testing.T) {
	shuffled := []types.TradeRecord{
		rec("2023-12-16", 300),
		rec("2023-12-14", 100),
		rec("2023-12-15", -50),
	}

	series := CumulativeSeries(shuffled)
	if len(series) != len(shuffled) {
		t.Fatalf("Expected %d points, got %d", len(shuffled), len(series))
	}
	if series[0].Cumulative != 100 {
		t.Errorf("Expected first point 100 (oldest first), got %f", series[0].Cumulative)
	}
	if series[1].Cumulative != 50 {
		t.Errorf("Expected second point 50, got %f", series[1].Cumulative)
	}
	if series[2].Cumulative != 350 {
		t.Errorf("Expected last point to equal total net P&L, got %f", series[2].Cumulative)
	}
}

func TestCumulativeSeriesLabels(t *testing.T) {
	records := []types.TradeRecord{
		{Date: "2023-12-16", Time: "10:45", NetPnl: 1},
		{Date: "2023-12-17", NetPnl: 2},
	}

	series := CumulativeSeries(records)
	if series[0].Label != "2023-12-16 10:45" {
		t.Errorf("Expected date+time label, got %q", series[0].Label)
	}
	if series[1].Label != "2023-12-17" {
		t.Errorf("Expected bare date label when time is absent, got %q", series[1].Label)
	}
}

func TestCumulativeSeriesPrefersCreatedAt(t *testing.T) {
	records := []types.TradeRecord{
		{Date: "2023-12-16", CreatedAt: "2023-12-16 09:00:00", NetPnl: 10},
		{Date: "2023-12-16", CreatedAt: "2023-12-16 15:30:00", NetPnl: 20},
	}

	series := CumulativeSeries([]types.TradeRecord{records[1], records[0]})
	if series[0].Cumulative != 10 {
		t.Errorf("Expected the 09:00 trade first, got cumulative %f", series[0].Cumulative)
	}
}

func TestSortNewestFirst(t *testing.T) {
	records := []types.TradeRecord{
		rec("2023-12-14", 1),
		rec("2023-12-16", 2),
		rec("2023-12-15", 3),
	}

	SortNewestFirst(records)
	if records[0].Date != "2023-12-16" || records[2].Date != "2023-12-14" {
		t.Errorf("Expected newest-first order, got %s, %s, %s",
			records[0].Date, records[1].Date, records[2].Date)
	}
}
