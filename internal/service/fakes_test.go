package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeMemoryRepo keeps memories in insertion order. Set err to simulate a
// database failure.
type fakeMemoryRepo struct {
	items  []model.Memory
	nextID int
	err    error
}

func (f *fakeMemoryRepo) Create(_ context.Context, m *model.Memory) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	m.ID = "mem-" + strconv.Itoa(f.nextID)
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeMemoryRepo) List(_ context.Context, filter repository.MemoryFilter) ([]model.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Memory, 0, len(f.items))
	for _, m := range f.items {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.FavoriteOnly && !m.IsFavorite {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMemoryRepo) Update(_ context.Context, id string, patch model.MemoryPatch) (*model.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			patch.Apply(&f.items[i])
			updated := f.items[i]
			return &updated, nil
		}
	}
	return nil, apperror.NotFound("Memory", id)
}

func (f *fakeMemoryRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Memory", id)
}

type fakeVideoRepo struct {
	items  []model.VideoMemory
	nextID int
	err    error
}

func (f *fakeVideoRepo) Create(_ context.Context, v *model.VideoMemory) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	v.ID = "vid-" + strconv.Itoa(f.nextID)
	f.items = append(f.items, *v)
	return nil
}

func (f *fakeVideoRepo) List(_ context.Context, filter repository.VideoFilter) ([]model.VideoMemory, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.VideoMemory, 0, len(f.items))
	for _, v := range f.items {
		if filter.FavoriteOnly && !v.IsFavorite {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVideoRepo) Update(_ context.Context, id string, patch model.VideoPatch) (*model.VideoMemory, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			patch.Apply(&f.items[i])
			updated := f.items[i]
			return &updated, nil
		}
	}
	return nil, apperror.NotFound("Video", id)
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Video", id)
}

type fakeLetterRepo struct {
	items []model.LoveLetter
	err   error
}

func (f *fakeLetterRepo) Create(_ context.Context, l *model.LoveLetter) error {
	if f.err != nil {
		return f.err
	}
	l.ID = "letter-" + strconv.Itoa(len(f.items)+1)
	f.items = append(f.items, *l)
	return nil
}

func (f *fakeLetterRepo) List(_ context.Context, filter repository.LetterFilter) ([]model.LoveLetter, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.LoveLetter, 0, len(f.items))
	for _, l := range f.items {
		if l.IsPrivate && !filter.IncludePrivate {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeTimelineRepo struct {
	items []model.TimelineEvent
	err   error
}

func (f *fakeTimelineRepo) Create(_ context.Context, e *model.TimelineEvent) error {
	if f.err != nil {
		return f.err
	}
	e.ID = "event-" + strconv.Itoa(len(f.items)+1)
	f.items = append(f.items, *e)
	return nil
}

func (f *fakeTimelineRepo) List(_ context.Context) ([]model.TimelineEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]model.TimelineEvent{}, f.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeTimelineRepo) MaxOrder(_ context.Context) (int, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	if len(f.items) == 0 {
		return 0, false, nil
	}
	highest := f.items[0].Order
	for _, e := range f.items[1:] {
		if e.Order > highest {
			highest = e.Order
		}
	}
	return highest, true, nil
}

// fakeSettingsRepo holds at most one document and counts creations.
type fakeSettingsRepo struct {
	doc     *model.SiteSettings
	created int
	saved   int
	err     error
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*model.SiteSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.doc == nil {
		return nil, apperror.NotFound("Settings", model.SettingsKey)
	}
	out := *f.doc
	return &out, nil
}

func (f *fakeSettingsRepo) GetOrCreate(ctx context.Context, defaults model.SiteSettings) (*model.SiteSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.doc == nil {
		defaults.ID = "settings-1"
		f.doc = &defaults
		f.created++
	}
	return f.Get(ctx)
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *model.SiteSettings) error {
	if f.err != nil {
		return f.err
	}
	if s.ID == "" {
		s.ID = "settings-1"
	}
	stored := *s
	f.doc = &stored
	f.saved++
	return nil
}
