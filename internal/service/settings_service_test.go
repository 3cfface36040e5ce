package service_test

import (
	"errors"
	"testing"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/service"
	"portfolio-engine/internal/testutil"
)

// testFernetKey is a base64-encoded 32-byte key for tests only.
const testFernetKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func newSettingsService(t *testing.T, fernetKey string) *service.SettingsService {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc, err := service.NewSettingsService(repository.NewSettingsRepository(db), fernetKey)
	if err != nil {
		t.Fatalf("NewSettingsService failed: %v", err)
	}
	return svc
}

func TestSettingsService(t *testing.T) {
	t.Run("plain keys round-trip unchanged", func(t *testing.T) {
		svc := newSettingsService(t, testFernetKey)

		if err := svc.SetSetting("display_name", "My Portfolio"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
		value, err := svc.GetSetting("display_name")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if value != "My Portfolio" {
			t.Errorf("Expected My Portfolio, got %q", value)
		}
	})

	t.Run("secret keys are encrypted at rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)
		svc, err := service.NewSettingsService(repo, testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsService failed: %v", err)
		}

		if err := svc.SetSetting("broker_api_token", "hunter2"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}

		stored, err := repo.GetSetting("broker_api_token")
		if err != nil {
			t.Fatalf("GetSetting on repo failed: %v", err)
		}
		if stored == "hunter2" {
			t.Error("Secret value stored in plaintext")
		}

		value, err := svc.GetSetting("broker_api_token")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if value != "hunter2" {
			t.Errorf("Expected decrypted hunter2, got %q", value)
		}
	})

	t.Run("secret keys without an encryption key are rejected", func(t *testing.T) {
		svc := newSettingsService(t, "")

		if err := svc.SetSetting("broker_api_secret", "hunter2"); err == nil {
			t.Fatal("Expected error storing a secret without a key")
		}
		// Non-secret keys still work.
		if err := svc.SetSetting("display_name", "ok"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
	})

	t.Run("missing key yields ErrSettingNotFound", func(t *testing.T) {
		svc := newSettingsService(t, testFernetKey)

		_, err := svc.GetSetting("never_set")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		svc := newSettingsService(t, testFernetKey)

		if err := svc.SetSetting("display_name", "temp"); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
		if err := svc.DeleteSetting("display_name"); err != nil {
			t.Fatalf("DeleteSetting failed: %v", err)
		}
		if _, err := svc.GetSetting("display_name"); !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound after delete, got %v", err)
		}
	})

	t.Run("malformed encryption key is rejected at construction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		if _, err := service.NewSettingsService(repository.NewSettingsRepository(db), "not-a-key"); err == nil {
			t.Fatal("Expected error for a malformed fernet key")
		}
	})
}
