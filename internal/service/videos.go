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

type VideoService struct {
	repo   repository.VideoRepository
	logger *slog.Logger
}

func NewVideoService(repo repository.VideoRepository, logger *slog.Logger) *VideoService {
	return &VideoService{repo: repo, logger: logger}
}

func (s *VideoService) List(ctx context.Context, favoriteOnly bool) ([]model.VideoMemory, error) {
	videos, err := s.repo.List(ctx, repository.VideoFilter{FavoriteOnly: favoriteOnly})
	if err != nil {
		s.logger.Error("failed to list videos", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

func (s *VideoService) Create(ctx context.Context, video model.VideoMemory) (*model.VideoMemory, error) {
	if video.URL == "" {
		return nil, apperror.ValidationFailed("url",
			"Video URL is required. Please provide your video URL.")
	}
	if video.Title == "" {
		return nil, apperror.ValidationFailed("title", "Title is required.")
	}

	video.ApplyDefaults()
	if err := s.repo.Create(ctx, &video); err != nil {
		s.logger.Error("failed to create video",
			slog.String("title", video.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating video: %w", err)
	}

	s.logger.Info("video created", slog.String("id", video.ID))
	return &video, nil
}

func (s *VideoService) Update(ctx context.Context, id string, patch model.VideoPatch) (*model.VideoMemory, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "Video ID is required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	video, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to update video",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("updating video: %w", err)
	}

	s.logger.Info("video updated", slog.String("id", id))
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "Video ID required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to delete video",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("deleting video: %w", err)
	}

	s.logger.Info("video deleted", slog.String("id", id))
	return nil
}
