package service

import (
	"database/sql"

	"portfolio-engine/internal/database"
	"portfolio-engine/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db        *sql.DB
	historyDB *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db, historyDB *sql.DB) *SystemService {
	return &SystemService{
		db:        db,
		historyDB: historyDB,
	}
}

// CheckHealth checks both the main database and the history cache database.
func (s *SystemService) CheckHealth() error {
	if err := database.HealthCheck(s.db); err != nil {
		return err
	}
	return database.HealthCheck(s.historyDB)
}

func (s *SystemService) CheckVersion() string {
	return version.Version
}
