package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type SettingsService struct {
	repo   repository.SettingsRepository
	logger *slog.Logger
}

func NewSettingsService(repo repository.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the settings, creating the defaults on first read.
func (s *SettingsService) Get(ctx context.Context) (*model.SiteSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, model.DefaultSettings())
	if err != nil {
		s.logger.Error("failed to load settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// Update merges patch into the stored settings. With nothing stored yet the
// patch is applied over the defaults.
func (s *SettingsService) Update(ctx context.Context, patch model.SettingsPatch) (*model.SiteSettings, error) {
	current, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		defaults := model.DefaultSettings()
		current = &defaults
	case err != nil:
		s.logger.Error("failed to load settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating settings: %w", err)
	}

	patch.Apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, current); err != nil {
		s.logger.Error("failed to save settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating settings: %w", err)
	}

	s.logger.Info("settings updated")
	return current, nil
}
