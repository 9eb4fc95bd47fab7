package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trade-pnl-tracker/internal/types"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestTrades(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "getTrades" {
			t.Errorf("Expected action=getTrades, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": []map[string]any{
				{"Date": "2023-12-14", "NetPnl": 100},
				{"Date": "2023-12-16", "NetPnl": 200},
				{"Date": "Date"},
			},
		})
	})
	defer srv.Close()

	records, err := client.Trades(context.Background())
	if err != nil {
		t.Fatalf("Trades failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records after normalization, got %d", len(records))
	}
	if records[0].Date != "2023-12-16" {
		t.Errorf("Expected newest-first order, got %q first", records[0].Date)
	}
}

func TestTradesRemoteError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "sheet unavailable",
		})
	})
	defer srv.Close()

	_, err := client.Trades(context.Background())
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected RemoteError, got %v", err)
	}
	if remoteErr.Message != "sheet unavailable" {
		t.Errorf("Expected the server message, got %q", remoteErr.Message)
	}
}

func TestTradesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := New(srv.URL, time.Second)

	_, err := client.Trades(context.Background())
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected RemoteError wrapping the transport failure, got %v", err)
	}
}

func TestSaveTrade(t *testing.T) {
	var got map[string]any
	var contentType string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})
	defer srv.Close()

	payload := types.SavePayload{
		Instrument: "NIFTY",
		Exchange:   "NSE",
		BuySell:    "BUY",
		EntryPrice: 100,
		ExitPrice:  120,
		NetPnl:     1234.4,
		Status:     "Closed",
	}
	if err := client.SaveTrade(context.Background(), payload); err != nil {
		t.Fatalf("SaveTrade failed: %v", err)
	}

	if got["action"] != "saveTrade" {
		t.Errorf("Expected action saveTrade, got %v", got["action"])
	}
	if got["instrument"] != "NIFTY" || got["exchange"] != "NSE" {
		t.Errorf("Unexpected instrument/exchange: %v/%v", got["instrument"], got["exchange"])
	}
	// A plain content type keeps the web app from demanding a CORS preflight.
	if contentType != "text/plain;charset=utf-8" {
		t.Errorf("Expected text/plain content type, got %q", contentType)
	}
}

func TestSaveTradeRequiresEntryPrice(t *testing.T) {
	client := New("http://unused.invalid", time.Second)

	err := client.SaveTrade(context.Background(), types.SavePayload{EntryPrice: 0})
	if !errors.Is(err, ErrEntryPriceRequired) {
		t.Fatalf("Expected ErrEntryPriceRequired, got %v", err)
	}
}

func TestSaveCharge(t *testing.T) {
	var got map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})
	defer srv.Close()

	if err := client.SaveCharge(context.Background(), 150, "AMC fee"); err != nil {
		t.Fatalf("SaveCharge failed: %v", err)
	}

	if got["instrument"] != "CHARGES" || got["exchange"] != "ADJ" {
		t.Errorf("Expected adjustment markers, got %v/%v", got["instrument"], got["exchange"])
	}
	if got["brokerage"] != 150.0 {
		t.Errorf("Expected charge amount under brokerage, got %v", got["brokerage"])
	}
	if got["netPnl"] != -150.0 {
		t.Errorf("Expected negated amount as net P&L, got %v", got["netPnl"])
	}
	if got["quantity"] != 0.0 || got["entryPrice"] != 0.0 {
		t.Errorf("Expected zeroed trade fields, got qty %v entry %v", got["quantity"], got["entryPrice"])
	}
	if got["closeReason"] != "AMC fee" {
		t.Errorf("Expected description as close reason, got %v", got["closeReason"])
	}
}

func TestSaveChargeRejectsNonPositiveAmount(t *testing.T) {
	client := New("http://unused.invalid", time.Second)

	for _, amount := range []float64{0, -10} {
		if err := client.SaveCharge(context.Background(), amount, "x"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount for %f, got %v", amount, err)
		}
	}
}
