package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type MemoryService struct {
	repo   repository.MemoryRepository
	logger *slog.Logger
}

func NewMemoryService(repo repository.MemoryRepository, logger *slog.Logger) *MemoryService {
	return &MemoryService{repo: repo, logger: logger}
}

func (s *MemoryService) List(ctx context.Context, filter repository.MemoryFilter) ([]model.Memory, error) {
	memories, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list memories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing memories: %w", err)
	}
	return memories, nil
}

// Create stores a memory for an externally hosted asset. The URL is
// mandatory; type defaults to image and publicId copies the URL.
func (s *MemoryService) Create(ctx context.Context, memory model.Memory) (*model.Memory, error) {
	if memory.URL == "" {
		return nil, apperror.ValidationFailed("url",
			"URL is required. Please provide your image or video URL.")
	}

	memory.ApplyDefaults()
	if err := memory.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &memory); err != nil {
		s.logger.Error("failed to create memory",
			slog.String("url", memory.URL),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating memory: %w", err)
	}

	s.logger.Info("memory created",
		slog.String("id", memory.ID),
		slog.String("type", string(memory.Type)),
	)
	return &memory, nil
}

// Update changes only the fields present in patch.
func (s *MemoryService) Update(ctx context.Context, id string, patch model.MemoryPatch) (*model.Memory, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "Memory ID is required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	memory, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to update memory",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("updating memory: %w", err)
	}

	s.logger.Info("memory updated", slog.String("id", id))
	return memory, nil
}

// Delete removes the record only; the hosted asset is left alone.
func (s *MemoryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "Memory ID required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to delete memory",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("deleting memory: %w", err)
	}

	s.logger.Info("memory deleted", slog.String("id", id))
	return nil
}
