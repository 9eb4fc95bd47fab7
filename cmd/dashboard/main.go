package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"trade-pnl-tracker/internal/economics"
	"trade-pnl-tracker/internal/logger"
	"trade-pnl-tracker/internal/settings"
	"trade-pnl-tracker/internal/sheet"
	"trade-pnl-tracker/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Shutdown(context.Background())

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	settingsStore, err := settings.Open(cfg.SettingsDB)
	if err != nil {
		log.Fatalf("failed to open settings store: %v", err)
	}
	defer settingsStore.Close()

	schedule, err := economics.NewSchedule(settingsStore)
	if err != nil {
		log.Fatalf("failed to build charge schedule: %v", err)
	}

	client := sheet.New(cfg.WebAppURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Dashboard.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	h := &handlers{client: client, schedule: schedule}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/summary", h.getSummary)
		apiGroup.GET("/series", h.getSeries)
		apiGroup.GET("/trades", h.getTrades)
		apiGroup.POST("/charges", h.postCharge)
		apiGroup.GET("/rates", h.getRates)
		apiGroup.PUT("/rates", h.putRates)
		apiGroup.DELETE("/rates", h.deleteRates)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Dashboard.Host, cfg.Dashboard.Port)
	logger.Info(context.Background(), "Dashboard starting", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
