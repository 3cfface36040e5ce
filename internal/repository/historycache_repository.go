package repository

import (
	"database/sql"
	"fmt"

	"portfolio-engine/internal/model"
)

// HistoryCacheRepository provides data access methods for the history_points
// table in the history cache database. The cache stores finished output
// series keyed by scope, never raw provider data; a scope's series is always
// replaced wholesale so readers can never observe a half-written range.
type HistoryCacheRepository struct {
	db *sql.DB
}

// NewHistoryCacheRepository creates a new HistoryCacheRepository with the
// provided history cache database connection.
func NewHistoryCacheRepository(db *sql.DB) *HistoryCacheRepository {
	return &HistoryCacheRepository{db: db}
}

// GetSeries retrieves the cached series for a scope, ordered by date
// ascending. Returns an empty slice when the scope has never been cached.
func (s *HistoryCacheRepository) GetSeries(scopeType, scopeID string) ([]model.HistoryPoint, error) {
	query := `
          SELECT date, close, pnl, mtm, cash_gic
          FROM history_points
          WHERE scope_type = ? AND scope_id = ?
          ORDER BY date
      `
	rows, err := s.db.Query(query, scopeType, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history_points table: %w", err)
	}
	defer rows.Close()

	points := []model.HistoryPoint{}

	for rows.Next() {
		var p model.HistoryPoint
		var date string

		err := rows.Scan(&date, &p.ClosePrice, &p.PnL, &p.MTM, &p.CashGic)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history_points table results: %w", err)
		}
		if p.Date, err = ParseTime(date); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history_points table: %w", err)
	}

	return points, nil
}

// ReplaceSeries atomically swaps the cached series for a scope. The delete
// and inserts run in one transaction; a failed rebuild leaves the previous
// series intact.
func (s *HistoryCacheRepository) ReplaceSeries(scopeType, scopeID string, points []model.HistoryPoint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`DELETE FROM history_points WHERE scope_type = ? AND scope_id = ?`,
		scopeType, scopeID)
	if err != nil {
		return fmt.Errorf("failed to clear cached series: %w", err)
	}

	stmt, err := tx.Prepare(`
          INSERT INTO history_points (scope_type, scope_id, date, close, pnl, mtm, cash_gic)
          VALUES (?, ?, ?, ?, ?, ?, ?)
      `)
	if err != nil {
		return fmt.Errorf("failed to prepare history cache insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		_, err := stmt.Exec(scopeType, scopeID,
			p.Date.UTC().Format("2006-01-02"), p.ClosePrice, p.PnL, p.MTM, p.CashGic)
		if err != nil {
			return fmt.Errorf("failed to insert cached point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history cache transaction: %w", err)
	}
	return nil
}

// DeleteSeries drops the cached series for a scope. Used when the scope's
// underlying positions change and the cache is known stale.
func (s *HistoryCacheRepository) DeleteSeries(scopeType, scopeID string) error {
	_, err := s.db.Exec(`DELETE FROM history_points WHERE scope_type = ? AND scope_id = ?`,
		scopeType, scopeID)
	if err != nil {
		return fmt.Errorf("failed to delete cached series: %w", err)
	}
	return nil
}
