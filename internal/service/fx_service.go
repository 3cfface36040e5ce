package service

import (
	"portfolio-engine/internal/fx"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
)

// FxService exposes the stored FX observations and the derived conversion
// matrix over every currency the portfolio touches.
type FxService struct {
	fxRateRepo        *repository.FxRateRepository
	positionRepo      *repository.PositionRepository
	accountRepo       *repository.AccountRepository
	reportingCurrency string
}

// NewFxService creates a new FxService with the provided dependencies.
func NewFxService(
	fxRateRepo *repository.FxRateRepository,
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	reportingCurrency string,
) *FxService {
	return &FxService{
		fxRateRepo:        fxRateRepo,
		positionRepo:      positionRepo,
		accountRepo:       accountRepo,
		reportingCurrency: reportingCurrency,
	}
}

// GetRates returns the latest stored rate per pair. Only directly observed
// pairs appear; derived rates live in the matrix.
func (s *FxService) GetRates() (map[string]float64, error) {
	return s.fxRateRepo.GetLatestRates()
}

// GetMatrix builds the square conversion matrix over every currency held
// in a position, used by an account, or configured for reporting.
// Unresolvable cells are null; the diagonal is exactly 1.
func (s *FxService) GetMatrix() (model.FxMatrix, error) {
	rates, err := s.fxRateRepo.GetLatestRates()
	if err != nil {
		return model.FxMatrix{}, err
	}

	currencies, err := s.portfolioCurrencies()
	if err != nil {
		return model.FxMatrix{}, err
	}

	resolver := fx.NewResolver(rates, s.reportingCurrency)
	ordered, cells := resolver.Matrix(currencies)

	return model.FxMatrix{Currencies: ordered, Rates: cells}, nil
}

// portfolioCurrencies collects every currency in play, reporting currency
// included.
func (s *FxService) portfolioCurrencies() ([]string, error) {
	positions, err := s.positionRepo.GetPositions("", "")
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return nil, err
	}

	currencies := []string{s.reportingCurrency}
	for _, p := range positions {
		currencies = append(currencies, p.Currency)
	}
	for _, a := range accounts {
		currencies = append(currencies, a.BaseCurrency)
	}
	return currencies, nil
}
