// Package repository declares the storage contracts the services depend on.
// Two backends implement them: repository/mongo for deployments and
// repository/sqlite for local development and tests.
//
// Every method is a single document operation; nothing here spans
// collections or holds a transaction.
package repository

import (
	"context"

	"github.com/sakif/scrapbook/internal/model"
)

// LetterFilter narrows a letter listing. The zero value hides private letters.
type LetterFilter struct {
	IncludePrivate bool
}

// MemoryFilter narrows a memory listing. Empty fields do not filter.
type MemoryFilter struct {
	Type         model.MediaType
	FavoriteOnly bool
}

type VideoFilter struct {
	FavoriteOnly bool
}

// Letters and media list newest first; the timeline lists by ascending order.

type LetterRepository interface {
	Create(ctx context.Context, letter *model.LoveLetter) error
	List(ctx context.Context, filter LetterFilter) ([]model.LoveLetter, error)
}

type MemoryRepository interface {
	Create(ctx context.Context, memory *model.Memory) error
	List(ctx context.Context, filter MemoryFilter) ([]model.Memory, error)
	// Update applies patch to the memory with id and returns the stored
	// result, or apperror.ErrNotFound.
	Update(ctx context.Context, id string, patch model.MemoryPatch) (*model.Memory, error)
	Delete(ctx context.Context, id string) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.VideoMemory) error
	List(ctx context.Context, filter VideoFilter) ([]model.VideoMemory, error)
	Update(ctx context.Context, id string, patch model.VideoPatch) (*model.VideoMemory, error)
	Delete(ctx context.Context, id string) error
}

type TimelineRepository interface {
	Create(ctx context.Context, event *model.TimelineEvent) error
	List(ctx context.Context) ([]model.TimelineEvent, error)
	// MaxOrder returns the highest order in the collection; ok is false
	// when the collection is empty.
	MaxOrder(ctx context.Context) (order int, ok bool, err error)
}

type SettingsRepository interface {
	// Get returns the settings document or apperror.ErrNotFound.
	Get(ctx context.Context) (*model.SiteSettings, error)
	// GetOrCreate returns the settings document, inserting defaults
	// atomically when none exists.
	GetOrCreate(ctx context.Context, defaults model.SiteSettings) (*model.SiteSettings, error)
	// Save writes settings as the singleton, creating it if absent.
	Save(ctx context.Context, settings *model.SiteSettings) error
}

// Store bundles one backend's repositories with its lifecycle.
type Store interface {
	Letters() LetterRepository
	Memories() MemoryRepository
	Videos() VideoRepository
	Timeline() TimelineRepository
	Settings() SettingsRepository

	// Ping checks the backend is reachable, connecting if needed.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
