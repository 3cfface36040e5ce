package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"portfolio-engine/internal/api/handlers"
	custommiddleware "portfolio-engine/internal/api/middleware"
	"portfolio-engine/internal/config"
	"portfolio-engine/internal/service"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	System     *service.SystemService
	Account    *service.AccountService
	Position   *service.PositionService
	Summary    *service.SummaryService
	History    *service.HistoryService
	Fx         *service.FxService
	MarketData *service.MarketDataService
	Sync       *service.SyncService
	Mapping    *service.MappingService
	Settings   *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/accounts", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svc.Account)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)
			r.Get("/{id}", accountHandler.Account)
			r.Put("/{id}", accountHandler.UpdateAccount)
			r.Delete("/{id}", accountHandler.DeleteAccount)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svc.Position)
			r.Get("/", positionHandler.Positions)
			r.Post("/", positionHandler.CreatePosition)
			r.Get("/{id}", positionHandler.Position)
			r.Put("/{id}", positionHandler.UpdatePosition)
			r.Delete("/{id}", positionHandler.DeletePosition)
		})

		summaryHandler := handlers.NewSummaryHandler(svc.Summary)
		r.Get("/summary", summaryHandler.Summary)

		r.Route("/history", func(r chi.Router) {
			historyHandler := handlers.NewHistoryHandler(svc.History)
			r.Get("/", historyHandler.History)
			r.Get("/aggregate", historyHandler.AggregateHistory)
		})

		r.Route("/fx", func(r chi.Router) {
			fxHandler := handlers.NewFxHandler(svc.Fx)
			r.Get("/", fxHandler.Rates)
			r.Get("/matrix", fxHandler.Matrix)
		})

		r.Route("/market-data", func(r chi.Router) {
			marketDataHandler := handlers.NewMarketDataHandler(svc.MarketData, svc.Sync)
			r.Get("/", marketDataHandler.Snapshots)
			r.Post("/refresh", marketDataHandler.Refresh)
			r.Get("/{symbol}", marketDataHandler.Snapshot)
			r.Post("/{symbol}/refresh", marketDataHandler.RefreshSymbol)
		})

		r.Route("/sectors", func(r chi.Router) {
			sectorHandler := handlers.NewSectorHandler(svc.Mapping)
			r.Get("/", sectorHandler.Sectors)
			r.Put("/", sectorHandler.SetSector)
			r.Delete("/{symbol}", sectorHandler.DeleteSector)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svc.Settings)
			r.Get("/{key}", settingsHandler.Setting)
			r.Put("/{key}", settingsHandler.SetSetting)
			r.Delete("/{key}", settingsHandler.DeleteSetting)
		})
	})

	return r
}
