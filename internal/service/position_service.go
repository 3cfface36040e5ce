package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/history"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/validation"
)

// PositionService handles position-related business logic operations.
// Mutations invalidate the cached history series the position feeds into.
type PositionService struct {
	positionRepo *repository.PositionRepository
	accountRepo  *repository.AccountRepository
	historyCache *history.Cache
}

// NewPositionService creates a new PositionService with the provided dependencies.
func NewPositionService(
	positionRepo *repository.PositionRepository,
	accountRepo *repository.AccountRepository,
	historyCache *history.Cache,
) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		accountRepo:  accountRepo,
		historyCache: historyCache,
	}
}

// GetPositions retrieves positions, optionally filtered by account and/or symbol.
func (s *PositionService) GetPositions(accountID, symbol string) ([]model.Position, error) {
	if accountID != "" {
		if err := validation.ValidateUUID(accountID); err != nil {
			return nil, err
		}
	}
	return s.positionRepo.GetPositions(accountID, symbol)
}

// GetPosition retrieves a single position by ID.
func (s *PositionService) GetPosition(positionID string) (model.Position, error) {
	if err := validation.ValidateUUID(positionID); err != nil {
		return model.Position{}, err
	}
	return s.positionRepo.GetPositionOnID(positionID)
}

// CreatePosition validates and persists a new position lot. Multiple lots
// of the same symbol in the same account on the same day are permitted.
func (s *PositionService) CreatePosition(req request.CreatePositionRequest) (model.Position, error) {
	if err := validation.ValidateCreatePosition(req); err != nil {
		return model.Position{}, err
	}

	// The FK would catch this too, but a proper not-found beats a
	// constraint error.
	if _, err := s.accountRepo.GetAccountOnID(req.AccountID); err != nil {
		return model.Position{}, err
	}

	dateAdded, err := time.Parse("2006-01-02", req.DateAdded)
	if err != nil {
		return model.Position{}, fmt.Errorf("%w: %v", validation.ErrInvalidDateRange, err)
	}

	position := model.Position{
		ID:          uuid.NewString(),
		AccountID:   req.AccountID,
		Symbol:      strings.TrimSpace(req.Symbol),
		Category:    model.Category(req.Category),
		Quantity:    req.Quantity,
		CostPerUnit: req.CostPerUnit,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		DateAdded:   dateAdded,
		YieldRate:   req.YieldRate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.positionRepo.CreatePosition(position); err != nil {
		return model.Position{}, err
	}

	s.invalidateHistory(position)
	return position, nil
}

// UpdatePosition applies the provided fields to an existing position and
// re-checks the category invariants against the merged result.
func (s *PositionService) UpdatePosition(positionID string, req request.UpdatePositionRequest) (model.Position, error) {
	if err := validation.ValidateUUID(positionID); err != nil {
		return model.Position{}, err
	}
	if err := validation.ValidateUpdatePosition(req); err != nil {
		return model.Position{}, err
	}

	position, err := s.positionRepo.GetPositionOnID(positionID)
	if err != nil {
		return model.Position{}, err
	}
	previous := position

	if req.Symbol != nil {
		position.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.Category != nil {
		position.Category = model.Category(*req.Category)
	}
	if req.Quantity != nil {
		position.Quantity = *req.Quantity
	}
	if req.CostPerUnit != nil {
		position.CostPerUnit = *req.CostPerUnit
	}
	if req.Currency != nil {
		position.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.DateAdded != nil {
		dateAdded, err := time.Parse("2006-01-02", *req.DateAdded)
		if err != nil {
			return model.Position{}, fmt.Errorf("%w: %v", validation.ErrInvalidDateRange, err)
		}
		position.DateAdded = dateAdded
	}
	if req.YieldRate != nil {
		position.YieldRate = req.YieldRate
	}

	if err := checkMergedPosition(position); err != nil {
		return model.Position{}, err
	}

	if err := s.positionRepo.UpdatePosition(position); err != nil {
		return model.Position{}, err
	}

	// Both the old and new identities are stale now.
	s.invalidateHistory(previous)
	s.invalidateHistory(position)
	return position, nil
}

// DeletePosition removes a position lot.
func (s *PositionService) DeletePosition(positionID string) error {
	if err := validation.ValidateUUID(positionID); err != nil {
		return err
	}

	position, err := s.positionRepo.GetPositionOnID(positionID)
	if err != nil {
		return err
	}

	if err := s.positionRepo.DeletePosition(positionID); err != nil {
		return err
	}

	s.invalidateHistory(position)
	return nil
}

// invalidateHistory drops every cached series the position contributes to.
func (s *PositionService) invalidateHistory(p model.Position) {
	if s.historyCache == nil {
		return
	}
	scopes := []history.Scope{
		history.NewSymbolScope(p.Symbol, ""),
		history.NewSymbolScope(p.Symbol, p.AccountID),
		history.NewAccountScope(p.AccountID),
		history.NewPortfolioScope(),
	}
	for _, scope := range scopes {
		if err := s.historyCache.Invalidate(scope); err != nil {
			log.Printf("failed to invalidate history cache for %s: %v", scope.Key(), err)
		}
	}
}

// checkMergedPosition enforces the cross-field invariants on the merged
// result of an update.
func checkMergedPosition(p model.Position) error {
	switch p.Category {
	case model.CategoryGIC:
		if p.YieldRate == nil {
			return fmt.Errorf("%w: GIC positions require a yield rate", apperrors.ErrInvalidPositionState)
		}
		if p.CostPerUnit != 1.0 {
			return fmt.Errorf("%w: GIC positions must have cost per unit 1.0", apperrors.ErrInvalidPositionState)
		}
	case model.CategoryCash:
		if p.CostPerUnit != 1.0 {
			return fmt.Errorf("%w: cash positions must have cost per unit 1.0", apperrors.ErrInvalidPositionState)
		}
	}
	return nil
}
