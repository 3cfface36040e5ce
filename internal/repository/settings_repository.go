package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"portfolio-engine/internal/apperrors"
)

// SettingsRepository provides data access methods for the settings table.
// Values are stored as written; encryption of secret values happens in the
// settings service, not here.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves the stored value for a key.
func (s *SettingsRepository) GetSetting(key string) (string, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query settings table: %w", err)
	}

	return value, nil
}

// SetSetting upserts the value for a key.
func (s *SettingsRepository) SetSetting(key, value string) error {
	query := `
          INSERT INTO settings (key, value) VALUES (?, ?)
          ON CONFLICT(key) DO UPDATE SET value = excluded.value
      `
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

// DeleteSetting removes a key. Deleting a missing key is not an error.
func (s *SettingsRepository) DeleteSetting(key string) error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
