package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
)

// PositionRepository provides data access methods for the positions table.
// Positions are lots; no uniqueness is enforced on (account, symbol, date).
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `
          id, account_id, symbol, category, quantity, cost_per_unit,
          currency, date_added, yield_rate, created_at
`

// GetPositions retrieves positions, optionally filtered by account and/or symbol.
// Empty filter values mean "all". Returns an empty slice when nothing matches.
func (s *PositionRepository) GetPositions(accountID, symbol string) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE 1=1`
	var args []any

	if accountID != "" {
		query += " AND account_id = ?"
		args = append(args, accountID)
	}
	if symbol != "" {
		query += " AND symbol = ?"
		args = append(args, symbol)
	}
	query += " ORDER BY date_added, symbol"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions table: %w", err)
	}

	return positions, nil
}

// GetPositionOnID retrieves a single position by its ID.
func (s *PositionRepository) GetPositionOnID(positionID string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = ?`

	p, err := scanPosition(s.db.QueryRow(query, positionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// DistinctEquitySymbols returns the distinct symbols of all equity
// positions. The sync loop uses this to know which quotes to refresh.
func (s *PositionRepository) DistinctEquitySymbols() ([]string, error) {
	query := `
          SELECT DISTINCT symbol
          FROM positions
          WHERE category = ?
          ORDER BY symbol
      `
	rows, err := s.db.Query(query, string(model.CategoryEquity))
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distinct symbols: %w", err)
	}

	return symbols, nil
}

// CreatePosition inserts a new position row.
func (s *PositionRepository) CreatePosition(p model.Position) error {
	query := `
          INSERT INTO positions (` + positionColumns + `)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		p.ID,
		p.AccountID,
		p.Symbol,
		string(p.Category),
		p.Quantity,
		p.CostPerUnit,
		p.Currency,
		p.DateAdded.UTC().Format("2006-01-02"),
		p.YieldRate,
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// UpdatePosition updates the mutable fields of a position.
func (s *PositionRepository) UpdatePosition(p model.Position) error {
	query := `
          UPDATE positions
          SET symbol = ?, category = ?, quantity = ?, cost_per_unit = ?,
              currency = ?, date_added = ?, yield_rate = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query,
		p.Symbol,
		string(p.Category),
		p.Quantity,
		p.CostPerUnit,
		p.Currency,
		p.DateAdded.UTC().Format("2006-01-02"),
		p.YieldRate,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

// DeletePosition removes a position row.
func (s *PositionRepository) DeletePosition(positionID string) error {
	result, err := s.db.Exec(`DELETE FROM positions WHERE id = ?`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

func scanPosition(row rowScanner) (model.Position, error) {
	var p model.Position
	var category, dateAdded, createdAt string
	var yieldRate sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.AccountID,
		&p.Symbol,
		&category,
		&p.Quantity,
		&p.CostPerUnit,
		&p.Currency,
		&dateAdded,
		&yieldRate,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Position{}, err
		}
		return model.Position{}, fmt.Errorf("failed to scan positions table results: %w", err)
	}

	p.Category = model.Category(category)
	if yieldRate.Valid {
		p.YieldRate = &yieldRate.Float64
	}
	if p.DateAdded, err = ParseTime(dateAdded); err != nil {
		return model.Position{}, err
	}
	if p.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Position{}, err
	}
	return p, nil
}
