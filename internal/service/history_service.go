package service

import (
	"context"
	"fmt"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/history"
	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/validation"
)

// HistoryService serves reconstructed time series through the history
// cache. Cache-only reads never touch the provider; forced-live reads pull
// fresh price and FX series, replay the scope day by day, and write the
// finished series through.
type HistoryService struct {
	positionRepo      *repository.PositionRepository
	accountRepo       *repository.AccountRepository
	provider          marketdata.Provider
	cache             *history.Cache
	reportingCurrency string
}

// NewHistoryService creates a new HistoryService with the provided dependencies.
func NewHistoryService(
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	provider marketdata.Provider,
	cache *history.Cache,
	reportingCurrency string,
) *HistoryService {
	return &HistoryService{
		positionRepo:      positionRepo,
		accountRepo:       accountRepo,
		provider:          provider,
		cache:             cache,
		reportingCurrency: reportingCurrency,
	}
}

// GetSymbolHistory returns the series for one symbol, optionally narrowed
// to a single account.
func (s *HistoryService) GetSymbolHistory(ctx context.Context, symbol, accountID string, useCache bool) (model.HistoryOut, error) {
	if symbol == "" {
		return model.HistoryOut{}, fmt.Errorf("%w: symbol is required", apperrors.ErrInvalidScope)
	}
	if accountID != "" {
		if err := validation.ValidateUUID(accountID); err != nil {
			return model.HistoryOut{}, err
		}
	}

	scope := history.NewSymbolScope(symbol, accountID)
	points, err := s.cache.Get(ctx, scope, useCache, s.rebuild)
	if err != nil {
		return model.HistoryOut{}, err
	}

	return model.HistoryOut{Label: symbol, AccountID: accountID, Points: points}, nil
}

// GetAggregateHistory returns the combined series for one account, or for
// the whole portfolio when accountID is empty.
func (s *HistoryService) GetAggregateHistory(ctx context.Context, accountID string, useCache bool) (model.HistoryOut, error) {
	var scope history.Scope
	label := "Portfolio"

	if accountID == "" {
		scope = history.NewPortfolioScope()
	} else {
		if err := validation.ValidateUUID(accountID); err != nil {
			return model.HistoryOut{}, err
		}
		account, err := s.accountRepo.GetAccountOnID(accountID)
		if err != nil {
			return model.HistoryOut{}, err
		}
		scope = history.NewAccountScope(accountID)
		label = account.Name
	}

	points, err := s.cache.Get(ctx, scope, useCache, s.rebuild)
	if err != nil {
		return model.HistoryOut{}, err
	}

	return model.HistoryOut{Label: label, AccountID: accountID, Points: points}, nil
}

// rebuild assembles a fresh reconstruction input for a scope and replays it.
func (s *HistoryService) rebuild(ctx context.Context, scope history.Scope) ([]model.HistoryPoint, error) {
	positions, err := s.scopePositions(scope)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return []model.HistoryPoint{}, nil
	}

	accounts, err := s.accountsByID()
	if err != nil {
		return nil, err
	}

	from := earliestDate(positions)
	now := time.Now().UTC()

	prices, err := s.fetchPrices(ctx, positions, from, now)
	if err != nil {
		return nil, err
	}

	fxSeries, err := s.fetchFxSeries(ctx, positions, accounts, from, now)
	if err != nil {
		return nil, err
	}

	return history.Reconstruct(ctx, history.Input{
		Scope:             scope,
		Positions:         positions,
		Accounts:          accounts,
		Prices:            prices,
		FxSeries:          fxSeries,
		ReportingCurrency: s.reportingCurrency,
		AsOf:              now,
	})
}

func (s *HistoryService) scopePositions(scope history.Scope) ([]model.Position, error) {
	switch scope.Type {
	case history.ScopeSymbol:
		return s.positionRepo.GetPositions(scope.AccountID, scope.Symbol)
	case history.ScopeAccount:
		return s.positionRepo.GetPositions(scope.AccountID, "")
	default:
		return s.positionRepo.GetPositions("", "")
	}
}

// fetchPrices pulls the daily close series for every equity symbol in scope.
func (s *HistoryService) fetchPrices(ctx context.Context, positions []model.Position, from, to time.Time) (map[string][]marketdata.PricePoint, error) {
	prices := make(map[string][]marketdata.PricePoint)
	for _, p := range positions {
		if p.Category != model.CategoryEquity {
			continue
		}
		if _, done := prices[p.Symbol]; done {
			continue
		}
		series, err := s.provider.HistoricalPrices(ctx, p.Symbol, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch price history for %s: %w", p.Symbol, err)
		}
		prices[p.Symbol] = series
	}
	return prices, nil
}

// fetchFxSeries pulls the daily rate series for every FX leg the scope's
// positions convert through: position currency to account currency, and
// account currency to the reporting currency.
func (s *HistoryService) fetchFxSeries(
	ctx context.Context,
	positions []model.Position,
	accounts map[string]model.Account,
	from, to time.Time,
) (map[string][]marketdata.PricePoint, error) {
	pairs := make(map[string]bool)
	for _, p := range positions {
		account, ok := accounts[p.AccountID]
		if !ok {
			continue
		}
		if p.Category == model.CategoryEquity && p.Currency != account.BaseCurrency {
			pairs[p.Currency+account.BaseCurrency] = true
		}
		if account.BaseCurrency != s.reportingCurrency {
			pairs[account.BaseCurrency+s.reportingCurrency] = true
		}
	}

	fxSeries := make(map[string][]marketdata.PricePoint, len(pairs))
	for pair := range pairs {
		series, err := s.provider.HistoricalFxRates(ctx, pair, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch FX history for %s: %w", pair, err)
		}
		fxSeries[pair] = series
	}
	return fxSeries, nil
}

func (s *HistoryService) accountsByID() (map[string]model.Account, error) {
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

func earliestDate(positions []model.Position) time.Time {
	earliest := positions[0].DateAdded
	for _, p := range positions[1:] {
		if p.DateAdded.Before(earliest) {
			earliest = p.DateAdded
		}
	}
	return earliest
}
