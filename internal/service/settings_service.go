package service

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"portfolio-engine/internal/repository"
)

// SettingsService handles key/value configuration. Values for secret keys
// (suffix "_token" or "_secret") are fernet-encrypted at rest; reads
// decrypt transparently.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	key          *fernet.Key
}

// NewSettingsService creates a new SettingsService. The fernet key may be
// empty, in which case secret keys are rejected rather than stored in
// plaintext.
func NewSettingsService(settingsRepo *repository.SettingsRepository, fernetKey string) (*SettingsService, error) {
	s := &SettingsService{settingsRepo: settingsRepo}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode settings encryption key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// GetSetting returns the value for a key, decrypted when the key is secret.
func (s *SettingsService) GetSetting(key string) (string, error) {
	value, err := s.settingsRepo.GetSetting(key)
	if err != nil {
		return "", err
	}

	if !isSecretKey(key) {
		return value, nil
	}

	if s.key == nil {
		return "", fmt.Errorf("no encryption key configured for secret setting %q", key)
	}
	plain := fernet.VerifyAndDecrypt([]byte(value), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting %q", key)
	}
	return string(plain), nil
}

// SetSetting stores the value for a key, encrypted when the key is secret.
func (s *SettingsService) SetSetting(key, value string) error {
	if isSecretKey(key) {
		if s.key == nil {
			return fmt.Errorf("no encryption key configured for secret setting %q", key)
		}
		token, err := fernet.EncryptAndSign([]byte(value), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt setting %q: %w", key, err)
		}
		value = string(token)
	}

	return s.settingsRepo.SetSetting(key, value)
}

// DeleteSetting removes a key.
func (s *SettingsService) DeleteSetting(key string) error {
	return s.settingsRepo.DeleteSetting(key)
}

// isSecretKey reports whether values for this key must be encrypted at rest.
func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "_token") || strings.HasSuffix(key, "_secret")
}
