// Package preferences persists user preferences in the key-value store.
package preferences

import (
	"context"
	"fmt"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

const preferencesKey = "preferences"

// Service stores and retrieves the user preferences blob.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

var _ interfaces.PreferencesService = (*Service)(nil)

// NewService creates a new preferences service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// GetPreferences returns the stored preferences, or defaults when none have
// been saved yet.
func (s *Service) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	prefs := &models.Preferences{DisplayCurrency: "BRL"}

	exists, err := s.storage.KV().Exists(ctx, preferencesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check preferences: %w", err)
	}
	if !exists {
		return prefs, nil
	}

	if err := s.storage.KV().Get(ctx, preferencesKey, prefs); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs.DisplayCurrency == "" {
		prefs.DisplayCurrency = "BRL"
	}
	return prefs, nil
}

// SavePreferences persists the preferences blob.
func (s *Service) SavePreferences(ctx context.Context, prefs *models.Preferences) error {
	if prefs == nil {
		return fmt.Errorf("preferences cannot be nil")
	}
	if err := s.storage.KV().Set(ctx, preferencesKey, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.logger.Debug().Bool("demo_mode", prefs.DemoMode).Msg("Preferences saved")
	return nil
}
