package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"portfolio-engine/internal/history"
	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/service"
)

// TestReportingCurrency is the reporting currency every test service uses.
const TestReportingCurrency = "CAD"

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.NewString()
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(repository.NewAccountRepository(db))
}

func NewTestPositionService(t *testing.T, db, historyDB *sql.DB) *service.PositionService {
	t.Helper()

	cache := history.NewCache(repository.NewHistoryCacheRepository(historyDB))

	return service.NewPositionService(
		repository.NewPositionRepository(db),
		repository.NewAccountRepository(db),
		cache,
	)
}

func NewTestSummaryService(t *testing.T, db *sql.DB) *service.SummaryService {
	t.Helper()

	return service.NewSummaryService(
		repository.NewPositionRepository(db),
		repository.NewAccountRepository(db),
		repository.NewMarketDataRepository(db),
		repository.NewFxRateRepository(db),
		repository.NewMappingRepository(db),
		TestReportingCurrency,
	)
}

func NewTestHistoryService(t *testing.T, db, historyDB *sql.DB, provider marketdata.Provider) *service.HistoryService {
	t.Helper()

	cache := history.NewCache(repository.NewHistoryCacheRepository(historyDB))

	return service.NewHistoryService(
		repository.NewPositionRepository(db),
		repository.NewAccountRepository(db),
		provider,
		cache,
		TestReportingCurrency,
	)
}

func NewTestFxService(t *testing.T, db *sql.DB) *service.FxService {
	t.Helper()

	return service.NewFxService(
		repository.NewFxRateRepository(db),
		repository.NewPositionRepository(db),
		repository.NewAccountRepository(db),
		TestReportingCurrency,
	)
}

func NewTestSyncService(t *testing.T, db *sql.DB, provider marketdata.Provider) *service.SyncService {
	t.Helper()

	return service.NewSyncService(
		repository.NewPositionRepository(db),
		repository.NewAccountRepository(db),
		repository.NewMarketDataRepository(db),
		repository.NewFxRateRepository(db),
		provider,
		TestReportingCurrency,
	)
}

func NewTestSystemService(t *testing.T, db, historyDB *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, historyDB)
}

func NewTestMappingService(t *testing.T, db *sql.DB) *service.MappingService {
	t.Helper()

	return service.NewMappingService(repository.NewMappingRepository(db))
}
