package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/validation"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAccounts()
}

// GetAccount retrieves a single account by ID.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	if err := validation.ValidateUUID(accountID); err != nil {
		return model.Account{}, err
	}
	return s.accountRepo.GetAccountOnID(accountID)
}

// CreateAccount validates and persists a new account.
func (s *AccountService) CreateAccount(req request.CreateAccountRequest) (model.Account, error) {
	if err := validation.ValidateCreateAccount(req); err != nil {
		return model.Account{}, err
	}

	account := model.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		BaseCurrency: strings.ToUpper(strings.TrimSpace(req.BaseCurrency)),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// UpdateAccount applies the provided fields to an existing account.
func (s *AccountService) UpdateAccount(accountID string, req request.UpdateAccountRequest) (model.Account, error) {
	if err := validation.ValidateUUID(accountID); err != nil {
		return model.Account{}, err
	}
	if err := validation.ValidateUpdateAccount(req); err != nil {
		return model.Account{}, err
	}

	account, err := s.accountRepo.GetAccountOnID(accountID)
	if err != nil {
		return model.Account{}, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseCurrency != nil {
		account.BaseCurrency = strings.ToUpper(strings.TrimSpace(*req.BaseCurrency))
	}

	if err := s.accountRepo.UpdateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// DeleteAccount removes an account; its positions cascade.
func (s *AccountService) DeleteAccount(accountID string) error {
	if err := validation.ValidateUUID(accountID); err != nil {
		return err
	}
	return s.accountRepo.DeleteAccount(accountID)
}
