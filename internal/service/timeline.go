package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type TimelineService struct {
	repo   repository.TimelineRepository
	logger *slog.Logger
}

func NewTimelineService(repo repository.TimelineRepository, logger *slog.Logger) *TimelineService {
	return &TimelineService{repo: repo, logger: logger}
}

func (s *TimelineService) List(ctx context.Context) ([]model.TimelineEvent, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list timeline events", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing timeline events: %w", err)
	}
	return events, nil
}

// Create stores event at order, or one past the current highest order when
// order is nil (0 for an empty timeline). Two concurrent creates without an
// order can receive the same value.
func (s *TimelineService) Create(ctx context.Context, event model.TimelineEvent, order *int) (*model.TimelineEvent, error) {
	event.ApplyDefaults()
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if order != nil {
		event.Order = *order
	} else {
		highest, ok, err := s.repo.MaxOrder(ctx)
		if err != nil {
			s.logger.Error("failed to read timeline order", slog.String("error", err.Error()))
			return nil, fmt.Errorf("creating timeline event: %w", err)
		}
		event.Order = 0
		if ok {
			event.Order = highest + 1
		}
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		s.logger.Error("failed to create timeline event",
			slog.String("title", event.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating timeline event: %w", err)
	}

	s.logger.Info("timeline event created",
		slog.String("id", event.ID),
		slog.Int("order", event.Order),
	)
	return &event, nil
}
