package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
)

// AccountRepository provides data access methods for the accounts table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all accounts ordered by name.
// Returns an empty slice when no accounts exist.
func (s *AccountRepository) GetAccounts() ([]model.Account, error) {
	query := `
          SELECT id, name, base_currency, created_at
          FROM accounts
          ORDER BY name
      `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts table: %w", err)
	}

	return accounts, nil
}

// GetAccountOnID retrieves a single account by its ID.
func (s *AccountRepository) GetAccountOnID(accountID string) (model.Account, error) {
	query := `
          SELECT id, name, base_currency, created_at
          FROM accounts
          WHERE id = ?
      `
	row := s.db.QueryRow(query, accountID)

	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, err
	}

	return a, nil
}

// CreateAccount inserts a new account row.
func (s *AccountRepository) CreateAccount(a model.Account) error {
	query := `
          INSERT INTO accounts (id, name, base_currency, created_at)
          VALUES (?, ?, ?, ?)
      `
	_, err := s.db.Exec(query, a.ID, a.Name, a.BaseCurrency, a.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// UpdateAccount updates the mutable fields of an account.
func (s *AccountRepository) UpdateAccount(a model.Account) error {
	query := `
          UPDATE accounts
          SET name = ?, base_currency = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query, a.Name, a.BaseCurrency, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account. Positions cascade via the FK.
func (s *AccountRepository) DeleteAccount(accountID string) error {
	result, err := s.db.Exec(`DELETE FROM accounts WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	var createdAt string

	err := row.Scan(&a.ID, &a.Name, &a.BaseCurrency, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to scan accounts table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAt)
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}
