package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
)

// MarketDataRepository provides data access methods for the market_data table.
// The table is append-only; reads always want the newest row per symbol.
type MarketDataRepository struct {
	db *sql.DB
}

// NewMarketDataRepository creates a new MarketDataRepository with the provided database connection.
func NewMarketDataRepository(db *sql.DB) *MarketDataRepository {
	return &MarketDataRepository{db: db}
}

// InsertSnapshot appends a new market data row for a symbol.
func (s *MarketDataRepository) InsertSnapshot(m model.MarketData) error {
	query := `
          INSERT INTO market_data (id, symbol, last_price, pe_ratio, change_percent, beta, long_name, timestamp)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		m.ID,
		m.Symbol,
		m.LastPrice,
		m.PERatio,
		m.ChangePercent,
		m.Beta,
		m.LongName,
		m.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert market data: %w", err)
	}
	return nil
}

// GetLatestSnapshots retrieves the newest row per symbol, keyed by symbol.
// Symbols with no rows are simply absent from the map.
func (s *MarketDataRepository) GetLatestSnapshots() (map[string]model.MarketData, error) {
	query := `
          SELECT md.id, md.symbol, md.last_price, md.pe_ratio, md.change_percent, md.beta, md.long_name, md.timestamp
          FROM market_data md
          JOIN (
              SELECT symbol, MAX(timestamp) AS max_ts
              FROM market_data
              GROUP BY symbol
          ) latest ON latest.symbol = md.symbol AND latest.max_ts = md.timestamp
      `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_data table: %w", err)
	}
	defer rows.Close()

	snapshots := make(map[string]model.MarketData)

	for rows.Next() {
		m, err := scanMarketData(rows)
		if err != nil {
			return nil, err
		}
		snapshots[m.Symbol] = m
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_data table: %w", err)
	}

	return snapshots, nil
}

// GetLatestOnSymbol retrieves the newest market data row for one symbol.
func (s *MarketDataRepository) GetLatestOnSymbol(symbol string) (model.MarketData, error) {
	query := `
          SELECT id, symbol, last_price, pe_ratio, change_percent, beta, long_name, timestamp
          FROM market_data
          WHERE symbol = ?
          ORDER BY timestamp DESC
          LIMIT 1
      `
	m, err := scanMarketData(s.db.QueryRow(query, symbol))
	if errors.Is(err, sql.ErrNoRows) {
		return model.MarketData{}, apperrors.ErrPriceUnavailable
	}
	if err != nil {
		return model.MarketData{}, err
	}
	return m, nil
}

func scanMarketData(row rowScanner) (model.MarketData, error) {
	var m model.MarketData
	var lastPrice, peRatio, changePercent, beta sql.NullFloat64
	var timestamp string

	err := row.Scan(
		&m.ID,
		&m.Symbol,
		&lastPrice,
		&peRatio,
		&changePercent,
		&beta,
		&m.LongName,
		&timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MarketData{}, err
		}
		return model.MarketData{}, fmt.Errorf("failed to scan market_data table results: %w", err)
	}

	if lastPrice.Valid {
		m.LastPrice = &lastPrice.Float64
	}
	if peRatio.Valid {
		m.PERatio = &peRatio.Float64
	}
	if changePercent.Valid {
		m.ChangePercent = &changePercent.Float64
	}
	if beta.Valid {
		m.Beta = &beta.Float64
	}
	if m.Timestamp, err = ParseTime(timestamp); err != nil {
		return model.MarketData{}, err
	}
	return m, nil
}
