package service

import (
	"time"

	"portfolio-engine/internal/fx"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/valuation"
)

// SummaryService computes the live portfolio summary: every position
// enriched with its spot price and resolved FX chain, grouped along the
// requested dimension. Nothing is cached; each call revalues from the
// latest stored snapshots.
type SummaryService struct {
	positionRepo      *repository.PositionRepository
	accountRepo       *repository.AccountRepository
	marketDataRepo    *repository.MarketDataRepository
	fxRateRepo        *repository.FxRateRepository
	mappingRepo       *repository.MappingRepository
	reportingCurrency string
}

// NewSummaryService creates a new SummaryService with the provided dependencies.
func NewSummaryService(
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	marketDataRepo *repository.MarketDataRepository,
	fxRateRepo *repository.FxRateRepository,
	mappingRepo *repository.MappingRepository,
	reportingCurrency string,
) *SummaryService {
	return &SummaryService{
		positionRepo:      positionRepo,
		accountRepo:       accountRepo,
		marketDataRepo:    marketDataRepo,
		fxRateRepo:        fxRateRepo,
		mappingRepo:       mappingRepo,
		reportingCurrency: reportingCurrency,
	}
}

// GetSummary values every position and aggregates along the requested
// dimension. Positions that cannot be valued (no price, no FX route) come
// back marked unavailable and are excluded from groups and totals.
func (s *SummaryService) GetSummary(groupByStr string) (model.SummaryOut, error) {
	groupBy, err := valuation.ParseGroupBy(groupByStr)
	if err != nil {
		return model.SummaryOut{}, err
	}

	positions, err := s.positionRepo.GetPositions("", "")
	if err != nil {
		return model.SummaryOut{}, err
	}

	accounts, err := s.accountsByID()
	if err != nil {
		return model.SummaryOut{}, err
	}

	snapshots, err := s.marketDataRepo.GetLatestSnapshots()
	if err != nil {
		return model.SummaryOut{}, err
	}

	resolver, err := s.Resolver()
	if err != nil {
		return model.SummaryOut{}, err
	}

	sectors, err := s.mappingRepo.GetSectorMappings()
	if err != nil {
		return model.SummaryOut{}, err
	}

	now := time.Now().UTC()
	enriched := make([]model.EnrichedPosition, 0, len(positions))

	for _, p := range positions {
		account, ok := accounts[p.AccountID]
		if !ok {
			// Orphaned rows should be impossible under the FK; skip
			// rather than fail the whole summary.
			continue
		}

		var spot *float64
		if p.Category == model.CategoryEquity {
			if snapshot, ok := snapshots[p.Symbol]; ok {
				spot = snapshot.LastPrice
			}
		}

		enriched = append(enriched, valuation.Valuate(p, account, spot, resolver, s.reportingCurrency, now))
	}

	return valuation.Summarize(enriched, groupBy, sectors, s.reportingCurrency), nil
}

// Resolver builds an FX resolver over the latest stored rates.
func (s *SummaryService) Resolver() (*fx.Resolver, error) {
	rates, err := s.fxRateRepo.GetLatestRates()
	if err != nil {
		return nil, err
	}
	return fx.NewResolver(rates, s.reportingCurrency), nil
}

// ReportingCurrency returns the configured reporting currency.
func (s *SummaryService) ReportingCurrency() string {
	return s.reportingCurrency
}

func (s *SummaryService) accountsByID() (map[string]model.Account, error) {
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID, nil
}
