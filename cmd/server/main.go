package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-engine/internal/api"
	"portfolio-engine/internal/config"
	"portfolio-engine/internal/database"
	"portfolio-engine/internal/history"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/service"
	"portfolio-engine/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connections
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	historyDB, err := database.OpenHistoryCache(cfg.Database.HistoryCachePath)
	if err != nil {
		log.Fatalf("Failed to open history cache: %v", err)
	}
	defer historyDB.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	marketDataRepo := repository.NewMarketDataRepository(db)
	fxRateRepo := repository.NewFxRateRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	historyCacheRepo := repository.NewHistoryCacheRepository(historyDB)

	// External market data provider and the history cache
	provider := yahoo.NewFinanceClient()
	historyCache := history.NewCache(historyCacheRepo)

	// Create services
	systemService := service.NewSystemService(db, historyDB)
	accountService := service.NewAccountService(accountRepo)
	positionService := service.NewPositionService(positionRepo, accountRepo, historyCache)
	summaryService := service.NewSummaryService(
		positionRepo,
		accountRepo,
		marketDataRepo,
		fxRateRepo,
		mappingRepo,
		cfg.Reporting.Currency,
	)
	historyService := service.NewHistoryService(
		positionRepo,
		accountRepo,
		provider,
		historyCache,
		cfg.Reporting.Currency,
	)
	fxService := service.NewFxService(fxRateRepo, positionRepo, accountRepo, cfg.Reporting.Currency)
	marketDataService := service.NewMarketDataService(marketDataRepo, provider)
	mappingService := service.NewMappingService(mappingRepo)
	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Settings.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}
	syncService := service.NewSyncService(
		positionRepo,
		accountRepo,
		marketDataRepo,
		fxRateRepo,
		provider,
		cfg.Reporting.Currency,
	)

	// Start the background market sync
	if err := syncService.Start(cfg.Sync.Interval); err != nil {
		log.Fatalf("Failed to start sync service: %v", err)
	}
	defer syncService.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Account:    accountService,
		Position:   positionService,
		Summary:    summaryService,
		History:    historyService,
		Fx:         fxService,
		MarketData: marketDataService,
		Sync:       syncService,
		Mapping:    mappingService,
		Settings:   settingsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
