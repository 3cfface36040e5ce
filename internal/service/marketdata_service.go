package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
)

// MarketDataService exposes the stored market snapshots and on-demand
// refreshes for single symbols. Bulk refresh lives in SyncService.
type MarketDataService struct {
	marketDataRepo *repository.MarketDataRepository
	provider       marketdata.Provider
}

// NewMarketDataService creates a new MarketDataService with the provided dependencies.
func NewMarketDataService(
	marketDataRepo *repository.MarketDataRepository,
	provider marketdata.Provider,
) *MarketDataService {
	return &MarketDataService{
		marketDataRepo: marketDataRepo,
		provider:       provider,
	}
}

// GetLatestSnapshots returns the newest stored snapshot per symbol.
func (s *MarketDataService) GetLatestSnapshots() (map[string]model.MarketData, error) {
	return s.marketDataRepo.GetLatestSnapshots()
}

// GetLatestOnSymbol returns the newest stored snapshot for one symbol.
func (s *MarketDataService) GetLatestOnSymbol(symbol string) (model.MarketData, error) {
	return s.marketDataRepo.GetLatestOnSymbol(symbol)
}

// RefreshSymbol fetches a fresh quote for one symbol and appends it as a
// new snapshot row.
func (s *MarketDataService) RefreshSymbol(ctx context.Context, symbol string) (model.MarketData, error) {
	quote, err := s.provider.SpotQuote(ctx, symbol)
	if err != nil {
		return model.MarketData{}, err
	}

	snapshot := SnapshotFromQuote(quote)
	if err := s.marketDataRepo.InsertSnapshot(snapshot); err != nil {
		return model.MarketData{}, err
	}
	return snapshot, nil
}

// SnapshotFromQuote converts a provider quote into a storable snapshot row.
func SnapshotFromQuote(quote marketdata.Quote) model.MarketData {
	return model.MarketData{
		ID:            uuid.NewString(),
		Symbol:        quote.Symbol,
		LastPrice:     quote.LastPrice,
		PERatio:       quote.PERatio,
		ChangePercent: quote.ChangePercent,
		Beta:          quote.Beta,
		LongName:      quote.LongName,
		Timestamp:     time.Now().UTC(),
	}
}
