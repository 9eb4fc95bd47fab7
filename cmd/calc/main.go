package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"trade-pnl-tracker/internal/economics"
	"trade-pnl-tracker/internal/logger"
	"trade-pnl-tracker/internal/sheet"
	"trade-pnl-tracker/internal/store"
	"trade-pnl-tracker/internal/tradelog"
	"trade-pnl-tracker/internal/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	instrument := flag.String("instrument", "", "instrument (NIFTY or CRUDE)")
	side := flag.String("side", "BUY", "BUY or SELL")
	optionType := flag.String("option", "CE", "option type (CE or PE)")
	strike := flag.String("strike", "", "strike price")
	lots := flag.String("lots", "1", "number of lots")
	lotSize := flag.String("lot-size", "", "contract lot size (instrument default when empty)")
	entry := flag.String("entry", "", "entry price")
	exit := flag.String("exit", "", "exit price (empty = position still open)")
	stopLoss := flag.String("sl", "", "stop loss price")
	capital := flag.String("capital", "", "capital before the trade")
	charges := flag.Bool("charges", false, "include statutory charges")
	save := flag.Bool("save", false, "persist the trade to the remote store")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	compressOldLogs(ctx)

	// Config is only mandatory for saving; a pure calculation runs with
	// built-in defaults when no config file is around.
	cfg, cfgErr := store.LoadConfig(*configPath)
	if cfgErr != nil && *save {
		if errors.Is(cfgErr, store.ErrEndpointNotConfigured) {
			log.Fatalf("cannot save: set web_app_url in %s (or WEB_APP_URL in the environment)", *configPath)
		}
		log.Fatalf("cannot save: %v", cfgErr)
	}

	inst := economics.Instrument(strings.ToUpper(strings.TrimSpace(*instrument)))
	if inst == "" {
		inst = economics.InstrumentNifty
		if cfg != nil {
			inst = economics.Instrument(cfg.DefaultInstrument)
		}
	}

	sched, closeSchedule := initializeSchedule(ctx, cfg)
	defer closeSchedule()

	size := economics.ParseQty(*lotSize)
	if size == 0 {
		size = economics.DefaultLotSize(inst)
	}

	input := economics.TradeInput{
		Instrument:     inst,
		Side:           economics.Side(strings.ToUpper(*side)),
		Lots:           economics.ParseAmount(*lots),
		LotSize:        size,
		EntryPrice:     economics.ParseAmount(*entry),
		ExitPrice:      economics.ParseAmount(*exit),
		StopLossPrice:  economics.ParseAmount(*stopLoss),
		IncludeCharges: *charges,
	}

	eco := economics.Compute(input, sched.Rates(inst))

	out, _ := json.MarshalIndent(eco, "", "  ")
	fmt.Println(string(out))

	if !*save {
		return
	}

	client := initializeSheetClient(cfg)
	payload := buildPayload(input, eco, economics.ParseAmount(*strike), economics.ParseAmount(*capital), strings.ToUpper(*optionType))

	if err := client.SaveTrade(ctx, payload); err != nil {
		switch {
		case errors.Is(err, sheet.ErrEntryPriceRequired):
			log.Fatal("cannot save: entry price is required")
		default:
			logger.ErrorWithErr(ctx, "Failed to save trade", err)
			os.Exit(1)
		}
	}

	logger.Trade(ctx, string(inst), string(input.Side), eco.Quantity,
		input.EntryPrice, input.ExitPrice, eco.NetPnl)

	if err := tradelog.Append(tradelog.Entry{
		Instrument:  payload.Instrument,
		Exchange:    payload.Exchange,
		Side:        payload.BuySell,
		OptionType:  payload.OptionType,
		Status:      payload.Status,
		CloseReason: payload.CloseReason,
		Qty:         eco.Quantity,
		EntryPrice:  input.EntryPrice,
		ExitPrice:   input.ExitPrice,
		GrossPnl:    eco.GrossPnl,
		NetPnl:      eco.NetPnl,
		Charges:     eco.TotalCharges,
	}); err != nil {
		logger.Warn(ctx, "Failed to append local journal entry", "error", err)
	}
}

// buildPayload maps a computed trade onto the store's flat saveTrade shape.
func buildPayload(in economics.TradeInput, eco economics.TradeEconomics, strike, capitalBefore float64, optionType string) types.SavePayload {
	exchange := "MCX"
	if in.Instrument == economics.InstrumentNifty {
		exchange = "NSE"
	}

	return types.SavePayload{
		Instrument:    string(in.Instrument),
		Exchange:      exchange,
		BuySell:       string(in.Side),
		OptionType:    optionType,
		StrikePrice:   strike,
		EntryPrice:    in.EntryPrice,
		ExitPrice:     in.ExitPrice,
		Lots:          in.Lots,
		LotSize:       float64(in.LotSize),
		Quantity:      eco.Quantity,
		CapitalBefore: capitalBefore,
		CapitalUsed:   round2(eco.CapitalRequired),
		SLType:        "Price",
		SLValue:       in.StopLossPrice,
		SLTrigger:     in.StopLossPrice,
		MaxLoss:       round2(eco.RiskAmount),
		Brokerage:     round2(eco.TotalCharges),
		GrossPnl:      round2(eco.GrossPnl),
		NetPnl:        round2(eco.NetPnl),
		ROI:           fmt.Sprintf("%.2f%%", eco.ROIPct),
		Status:        string(eco.Status),
		CloseReason:   "Manual",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
