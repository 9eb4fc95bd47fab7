package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"trade-pnl-tracker/internal/economics"
	"trade-pnl-tracker/internal/logger"
	"trade-pnl-tracker/internal/settings"
	"trade-pnl-tracker/internal/sheet"
	"trade-pnl-tracker/internal/store"
	"trade-pnl-tracker/internal/tradelog"
)

// initializeSystem loads the environment and initializes the logger
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// compressOldLogs compresses old journal files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("PNL_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old journal files", "error", err)
		}
	}
}

// initializeSchedule opens the local settings store and builds the charge
// schedule from it. A missing store falls back to built-in defaults.
func initializeSchedule(ctx context.Context, cfg *store.Config) (*economics.Schedule, func()) {
	if cfg == nil {
		sched, _ := economics.NewSchedule(nil)
		return sched, func() {}
	}

	st, err := settings.Open(cfg.SettingsDB)
	if err != nil {
		logger.Warn(ctx, "Settings store unavailable, using default charge rates", "error", err)
		sched, _ := economics.NewSchedule(nil)
		return sched, func() {}
	}

	sched, err := economics.NewSchedule(st)
	if err != nil {
		logger.Warn(ctx, "Failed to load charge overrides, using default rates", "error", err)
		sched, _ = economics.NewSchedule(nil)
	}
	return sched, func() { st.Close() }
}

// initializeSheetClient builds the remote store client from config
func initializeSheetClient(cfg *store.Config) *sheet.Client {
	return sheet.New(cfg.WebAppURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
}
