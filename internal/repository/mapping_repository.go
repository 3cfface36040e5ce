package repository

import (
	"database/sql"
	"fmt"

	"portfolio-engine/internal/model"
)

// MappingRepository provides data access methods for the sector_mappings
// and industry_mappings tables. Mappings live independently of positions.
type MappingRepository struct {
	db *sql.DB
}

// NewMappingRepository creates a new MappingRepository with the provided database connection.
func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// GetSectorMappings retrieves all sector mappings as a symbol -> sector map.
func (s *MappingRepository) GetSectorMappings() (map[string]string, error) {
	return s.getMappings("sector_mappings", "sector")
}

// GetIndustryMappings retrieves all industry mappings as a symbol -> industry map.
func (s *MappingRepository) GetIndustryMappings() (map[string]string, error) {
	return s.getMappings("industry_mappings", "industry")
}

// SetSectorMapping upserts the sector for a symbol.
func (s *MappingRepository) SetSectorMapping(m model.SectorMapping) error {
	query := `
          INSERT INTO sector_mappings (symbol, sector) VALUES (?, ?)
          ON CONFLICT(symbol) DO UPDATE SET sector = excluded.sector
      `
	if _, err := s.db.Exec(query, m.Symbol, m.Sector); err != nil {
		return fmt.Errorf("failed to upsert sector mapping: %w", err)
	}
	return nil
}

// SetIndustryMapping upserts the industry for a symbol.
func (s *MappingRepository) SetIndustryMapping(m model.IndustryMapping) error {
	query := `
          INSERT INTO industry_mappings (symbol, industry) VALUES (?, ?)
          ON CONFLICT(symbol) DO UPDATE SET industry = excluded.industry
      `
	if _, err := s.db.Exec(query, m.Symbol, m.Industry); err != nil {
		return fmt.Errorf("failed to upsert industry mapping: %w", err)
	}
	return nil
}

// DeleteSectorMapping removes the sector mapping for a symbol. Deleting a
// mapping that does not exist is not an error.
func (s *MappingRepository) DeleteSectorMapping(symbol string) error {
	if _, err := s.db.Exec(`DELETE FROM sector_mappings WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to delete sector mapping: %w", err)
	}
	return nil
}

func (s *MappingRepository) getMappings(table, column string) (map[string]string, error) {
	//#nosec G202 -- Safe: table and column names come from the two callers above, not user input
	query := `SELECT symbol, ` + column + ` FROM ` + table

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s table: %w", table, err)
	}
	defer rows.Close()

	mappings := make(map[string]string)

	for rows.Next() {
		var symbol, value string
		if err := rows.Scan(&symbol, &value); err != nil {
			return nil, fmt.Errorf("failed to scan %s table results: %w", table, err)
		}
		mappings[symbol] = value
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s table: %w", table, err)
	}

	return mappings, nil
}
