package repository

import (
	"database/sql"
	"fmt"
	"time"

	"portfolio-engine/internal/model"
)

// FxRateRepository provides data access methods for the fx_rates table.
// Only directly observed pairs are stored; inverse and triangulated rates
// are derived at read time by the fx resolver.
type FxRateRepository struct {
	db *sql.DB
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// InsertRate appends a new FX observation for a pair.
func (s *FxRateRepository) InsertRate(r model.FxRate) error {
	query := `
          INSERT INTO fx_rates (id, pair, rate, timestamp)
          VALUES (?, ?, ?, ?)
      `
	_, err := s.db.Exec(query, r.ID, r.Pair, r.Rate, r.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert fx rate: %w", err)
	}
	return nil
}

// GetLatestRates retrieves the newest observation per pair as a
// pair -> rate map, the shape the fx resolver consumes.
func (s *FxRateRepository) GetLatestRates() (map[string]float64, error) {
	query := `
          SELECT fr.pair, fr.rate
          FROM fx_rates fr
          JOIN (
              SELECT pair, MAX(timestamp) AS max_ts
              FROM fx_rates
              GROUP BY pair
          ) latest ON latest.pair = fr.pair AND latest.max_ts = fr.timestamp
      `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fx_rates table: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]float64)

	for rows.Next() {
		var pair string
		var rate float64
		if err := rows.Scan(&pair, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan fx_rates table results: %w", err)
		}
		rates[pair] = rate
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fx_rates table: %w", err)
	}

	return rates, nil
}
