// Package sheet talks to the remote trade store: a spreadsheet web app that
// accepts a saveTrade action and serves the accumulated rows back through a
// getTrades action.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trade-pnl-tracker/internal/api"
	"trade-pnl-tracker/internal/report"
	"trade-pnl-tracker/internal/types"
)

var (
	// ErrEntryPriceRequired rejects a save with a non-positive entry price.
	ErrEntryPriceRequired = errors.New("entry price is required to save a trade")
	// ErrInvalidAmount rejects a manual charge with a non-positive amount.
	ErrInvalidAmount = errors.New("charge amount must be positive")
)

// RemoteError carries the store's own message when it reports a non-success
// status, or wraps the transport failure otherwise.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return "remote store: " + e.Message
	}
	if e.Err != nil {
		return "remote store: " + e.Err.Error()
	}
	return "remote store error"
}

func (e *RemoteError) Unwrap() error { return e.Err }

type apiResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    []map[string]any `json:"data"`
}

// Client is the HTTP client for the remote store.
type Client struct {
	api *api.Client
}

// New creates a store client against the configured web app URL.
func New(webAppURL string, timeout time.Duration) *Client {
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(webAppURL),
			api.WithTimeout(timeout),
			api.WithLogging(true),
			// The web app only answers simple requests; a JSON content
			// type triggers a CORS preflight it cannot serve.
			api.WithHeader("Content-Type", "text/plain;charset=utf-8"),
		),
	}
}

// Trades fetches all stored records, normalized and sorted newest-first.
func (c *Client) Trades(ctx context.Context) ([]types.TradeRecord, error) {
	resp, err := c.api.GET(ctx, "?action=getTrades")
	if err != nil {
		return nil, &RemoteError{Err: err}
	}

	var body apiResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, &RemoteError{Err: err}
	}
	if body.Status != "success" {
		return nil, &RemoteError{Message: body.Message}
	}

	records := Normalize(body.Data)
	report.SortNewestFirst(records)
	return records, nil
}

// SaveTrade appends one trade record. The store assigns timestamp and id.
// There is no idempotency key, so a resend after an ambiguous failure can
// create a duplicate record.
func (c *Client) SaveTrade(ctx context.Context, payload types.SavePayload) error {
	if payload.EntryPrice <= 0 {
		return ErrEntryPriceRequired
	}
	payload.Action = "saveTrade"
	return c.post(ctx, payload)
}

// SaveCharge appends a manual charge adjustment: a compensating record with
// the trade fields zeroed and the amount debited from net P&L. The store
// stamps the record date itself.
func (c *Client) SaveCharge(ctx context.Context, amount float64, desc string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	payload := types.SavePayload{
		Action:      "saveTrade",
		Instrument:  "CHARGES",
		Exchange:    "ADJ",
		BuySell:     "-",
		OptionType:  "DEBIT",
		Brokerage:   amount,
		NetPnl:      -amount,
		ROI:         "0%",
		Status:      "Closed",
		CloseReason: desc,
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload types.SavePayload) error {
	resp, err := c.api.POST(ctx, "", payload)
	if err != nil {
		return &RemoteError{Err: err}
	}
	var body apiResponse
	if err := resp.ParseJSON(&body); err != nil {
		return &RemoteError{Err: err}
	}
	if body.Status != "success" {
		if body.Message == "" {
			return &RemoteError{Message: fmt.Sprintf("save rejected with status %q", body.Status)}
		}
		return &RemoteError{Message: body.Message}
	}
	return nil
}
