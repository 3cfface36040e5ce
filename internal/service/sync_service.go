package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
)

// SyncService keeps the stored market snapshots and FX observations fresh.
// It runs on a cron schedule and can be triggered on demand; overlapping
// runs are skipped rather than queued, since a second concurrent sync can
// only fetch the same data again.
type SyncService struct {
	positionRepo      *repository.PositionRepository
	accountRepo       *repository.AccountRepository
	marketDataRepo    *repository.MarketDataRepository
	fxRateRepo        *repository.FxRateRepository
	provider          marketdata.Provider
	reportingCurrency string

	running sync.Mutex
	cron    *cron.Cron
}

// NewSyncService creates a new SyncService with the provided dependencies.
func NewSyncService(
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	marketDataRepo *repository.MarketDataRepository,
	fxRateRepo *repository.FxRateRepository,
	provider marketdata.Provider,
	reportingCurrency string,
) *SyncService {
	return &SyncService{
		positionRepo:      positionRepo,
		accountRepo:       accountRepo,
		marketDataRepo:    marketDataRepo,
		fxRateRepo:        fxRateRepo,
		provider:          provider,
		reportingCurrency: reportingCurrency,
	}
}

// Start schedules periodic syncs at the given interval and runs one sync
// immediately in the background so the store is warm at boot.
func (s *SyncService) Start(interval time.Duration) error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := s.SyncNow(context.Background()); err != nil {
			log.Printf("scheduled sync failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	s.cron.Start()

	go func() {
		if err := s.SyncNow(context.Background()); err != nil {
			log.Printf("initial sync failed: %v", err)
		}
	}()

	return nil
}

// Stop halts the schedule and waits for a running sync entry to return.
func (s *SyncService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SyncNow refreshes every held equity symbol and every FX pair the
// portfolio converts through. Returns immediately when a sync is already
// running. Individual symbol failures are logged and skipped so one
// delisted ticker cannot starve the rest.
func (s *SyncService) SyncNow(ctx context.Context) error {
	if !s.running.TryLock() {
		log.Print("sync already running, skipping")
		return nil
	}
	defer s.running.Unlock()

	start := time.Now()

	symbols, err := s.positionRepo.DistinctEquitySymbols()
	if err != nil {
		return err
	}

	var synced, failed int
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		quote, err := s.provider.SpotQuote(ctx, symbol)
		if err != nil {
			log.Printf("sync: failed to fetch quote for %s: %v", symbol, err)
			failed++
			continue
		}
		if err := s.marketDataRepo.InsertSnapshot(SnapshotFromQuote(quote)); err != nil {
			log.Printf("sync: failed to store snapshot for %s: %v", symbol, err)
			failed++
			continue
		}
		synced++
	}

	pairs, err := s.requiredPairs()
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		rate, err := s.provider.FxRate(ctx, pair)
		if err != nil {
			log.Printf("sync: failed to fetch rate for %s: %v", pair, err)
			failed++
			continue
		}
		observation := model.FxRate{
			ID:        uuid.NewString(),
			Pair:      pair,
			Rate:      rate,
			Timestamp: time.Now().UTC(),
		}
		if err := s.fxRateRepo.InsertRate(observation); err != nil {
			log.Printf("sync: failed to store rate for %s: %v", pair, err)
			failed++
			continue
		}
		synced++
	}

	log.Printf("sync finished: %d updated, %d failed in %s", synced, failed, time.Since(start).Round(time.Millisecond))
	return nil
}

// requiredPairs lists every direct FX leg valuation needs: position
// currency to account currency, and account currency to the reporting
// currency. Cross rates are derived by the resolver, never fetched.
func (s *SyncService) requiredPairs() ([]string, error) {
	positions, err := s.positionRepo.GetPositions("", "")
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return nil, err
	}

	accountsByID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		accountsByID[a.ID] = a
	}

	seen := make(map[string]bool)
	pairs := []string{}

	add := func(from, to string) {
		if from == to {
			return
		}
		pair := from + to
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}

	for _, p := range positions {
		account, ok := accountsByID[p.AccountID]
		if !ok {
			continue
		}
		if p.Category == model.CategoryEquity {
			add(p.Currency, account.BaseCurrency)
		}
		add(account.BaseCurrency, s.reportingCurrency)
	}

	return pairs, nil
}
