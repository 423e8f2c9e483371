// Package service holds the rules of each resource: defaults, required
// fields, timeline ordering and the settings singleton. Services speak
// model types and apperror values; they know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type LetterService struct {
	repo   repository.LetterRepository
	logger *slog.Logger
}

func NewLetterService(repo repository.LetterRepository, logger *slog.Logger) *LetterService {
	return &LetterService{repo: repo, logger: logger}
}

// List returns letters newest first, hiding private ones unless
// includePrivate is set.
func (s *LetterService) List(ctx context.Context, includePrivate bool) ([]model.LoveLetter, error) {
	letters, err := s.repo.List(ctx, repository.LetterFilter{IncludePrivate: includePrivate})
	if err != nil {
		s.logger.Error("failed to list letters", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing letters: %w", err)
	}
	return letters, nil
}

func (s *LetterService) Create(ctx context.Context, letter model.LoveLetter) (*model.LoveLetter, error) {
	if err := letter.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &letter); err != nil {
		s.logger.Error("failed to create letter",
			slog.String("title", letter.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating letter: %w", err)
	}

	s.logger.Info("letter created",
		slog.String("id", letter.ID),
		slog.Bool("private", letter.IsPrivate),
	)
	return &letter, nil
}
