package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trade-pnl-tracker/internal/economics"
	"trade-pnl-tracker/internal/logger"
	"trade-pnl-tracker/internal/report"
	"trade-pnl-tracker/internal/sheet"
	"trade-pnl-tracker/internal/tradelog"
	"trade-pnl-tracker/internal/types"
)

// recentLimit caps the trades table, matching the dashboard's top-20 view.
const recentLimit = 20

type handlers struct {
	client   *sheet.Client
	schedule *economics.Schedule
}

// fetchFiltered loads all records from the store and applies the ?range
// filter. Records come back newest-first.
func (h *handlers) fetchFiltered(c *gin.Context) ([]types.TradeRecord, bool) {
	op := logger.StartOperation(c.Request.Context(), "fetch_trades")
	records, err := h.client.Trades(op.GetContext())
	if err != nil {
		op.EndWithError(err)
		var remoteErr *sheet.RemoteError
		if errors.As(err, &remoteErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": remoteErr.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	op.End()

	rng := report.ParseRange(c.Query("range"))
	return report.Filter(records, rng, time.Now()), true
}

func (h *handlers) getSummary(c *gin.Context) {
	records, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Summarize(records))
}

func (h *handlers) getSeries(c *gin.Context) {
	records, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.CumulativeSeries(records))
}

func (h *handlers) getTrades(c *gin.Context) {
	records, ok := h.fetchFiltered(c)
	if !ok {
		return
	}
	if len(records) > recentLimit {
		records = records[:recentLimit]
	}
	c.JSON(http.StatusOK, records)
}

type chargeRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (h *handlers) postCharge(c *gin.Context) {
	var req chargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.client.SaveCharge(ctx, req.Amount, req.Description); err != nil {
		if errors.Is(err, sheet.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	logger.Charge(ctx, req.Date, req.Amount, req.Description)
	if err := tradelog.AppendCharge(tradelog.ChargeEntry{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
	}); err != nil {
		logger.Warn(ctx, "Failed to append charge journal entry", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *handlers) getRates(c *gin.Context) {
	inst := economics.Instrument(c.DefaultQuery("instrument", string(economics.InstrumentNifty)))
	c.JSON(http.StatusOK, h.schedule.Rates(inst))
}

type ratesRequest struct {
	Instrument string                `json:"instrument"`
	Rates      economics.ChargeRates `json:"rates"`
}

func (h *handlers) putRates(c *gin.Context) {
	var req ratesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	inst := economics.Instrument(req.Instrument)
	if err := h.schedule.SetRates(inst, req.Rates); err != nil {
		if errors.Is(err, economics.ErrInvalidRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.schedule.Rates(inst))
}

func (h *handlers) deleteRates(c *gin.Context) {
	inst := economics.Instrument(c.DefaultQuery("instrument", string(economics.InstrumentNifty)))
	if err := h.schedule.ResetToDefault(inst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.schedule.Rates(inst))
}
