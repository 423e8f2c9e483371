package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func createTestMemory(t *testing.T, db *DB, url string, favorite bool) *model.Memory {
	t.Helper()
	memory := &model.Memory{URL: url, IsFavorite: favorite}
	memory.ApplyDefaults()
	if err := db.Memories().Create(context.Background(), memory); err != nil {
		t.Fatalf("failed to create test memory: %v", err)
	}
	return memory
}

func strPtr(s string) *string { return &s }

func TestDSNFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"sqlite://data/site.db", "data/site.db"},
		{"sqlite::memory:", ":memory:"},
		{"file:site.db?mode=rwc", "file:site.db?mode=rwc"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if !IsURI(tt.uri) {
				t.Fatalf("IsURI(%q) = false", tt.uri)
			}
			if got := DSNFromURI(tt.uri); got != tt.want {
				t.Errorf("DSNFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}

	if IsURI("mongodb://localhost:27017") {
		t.Error("IsURI accepted a mongodb uri")
	}
}

func TestMemoryCreate(t *testing.T) {
	db := newTestDB(t)

	memory := createTestMemory(t, db, "https://x/y.jpg", false)

	if memory.ID == "" {
		t.Error("Create() did not set ID")
	}
	if memory.CreatedAt.IsZero() || memory.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}
}

func TestMemoryList_FiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := createTestMemory(t, db, "https://x/1.jpg", true)
	createTestMemory(t, db, "https://x/2.jpg", false)
	clip := &model.Memory{URL: "https://x/3.mp4", Type: model.MediaVideo}
	clip.ApplyDefaults()
	if err := db.Memories().Create(ctx, clip); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	all, err := db.Memories().List(ctx, repository.MemoryFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d memories, want 3", len(all))
	}
	if all[0].ID != clip.ID || all[2].ID != first.ID {
		t.Errorf("List() not newest first: got %s..%s", all[0].ID, all[2].ID)
	}

	favorites, err := db.Memories().List(ctx, repository.MemoryFilter{FavoriteOnly: true})
	if err != nil {
		t.Fatalf("List(favorite) error = %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != first.ID {
		t.Errorf("List(favorite) = %+v, want only %s", favorites, first.ID)
	}

	videos, err := db.Memories().List(ctx, repository.MemoryFilter{Type: model.MediaVideo})
	if err != nil {
		t.Fatalf("List(video) error = %v", err)
	}
	if len(videos) != 1 || videos[0].ID != clip.ID {
		t.Errorf("List(video) = %+v, want only %s", videos, clip.ID)
	}
}

func TestMemoryUpdate_Partial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	original := &model.Memory{URL: "https://x/y.jpg", Caption: "Day one", Tags: []string{"beach"}}
	original.ApplyDefaults()
	if err := db.Memories().Create(ctx, original); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := db.Memories().Update(ctx, original.ID, model.MemoryPatch{Caption: strPtr("Day two")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Caption != "Day two" {
		t.Errorf("Caption = %q, want %q", updated.Caption, "Day two")
	}
	if updated.URL != original.URL || updated.PublicID != original.URL {
		t.Errorf("URL/PublicID changed: %q / %q", updated.URL, updated.PublicID)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "beach" {
		t.Errorf("Tags = %v, want [beach]", updated.Tags)
	}

	listed, err := db.Memories().List(ctx, repository.MemoryFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if listed[0].Caption != "Day two" {
		t.Errorf("stored Caption = %q, want %q", listed[0].Caption, "Day two")
	}
}

func TestMemoryUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Memories().Update(context.Background(), "nonexistent", model.MemoryPatch{Caption: strPtr("x")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memory := createTestMemory(t, db, "https://x/y.jpg", false)

	if err := db.Memories().Delete(ctx, memory.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	err := db.Memories().Delete(ctx, memory.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}

	remaining, err := db.Memories().List(ctx, repository.MemoryFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("List() after delete returned %d, want 0", len(remaining))
	}
}

func TestVideoLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	videos := db.Videos()

	video := &model.VideoMemory{Title: "First dance", URL: "https://x/v.mp4"}
	video.ApplyDefaults()
	if err := videos.Create(ctx, video); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	fav := true
	updated, err := videos.Update(ctx, video.ID, model.VideoPatch{IsFavorite: &fav})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.IsFavorite || updated.Title != "First dance" {
		t.Errorf("Update() = %+v", updated)
	}

	favorites, err := videos.List(ctx, repository.VideoFilter{FavoriteOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("List(favorite) returned %d, want 1", len(favorites))
	}

	if err := videos.Delete(ctx, video.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := videos.Update(ctx, video.ID, model.VideoPatch{IsFavorite: &fav}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() after delete error = %v, want ErrNotFound", err)
	}
}

func TestLetterList_HidesPrivate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, private := range []bool{false, true, false} {
		letter := &model.LoveLetter{
			Title: "t", Date: "d", Preview: "p", Content: "c", From: "f", IsPrivate: private,
		}
		if err := db.Letters().Create(ctx, letter); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	public, err := db.Letters().List(ctx, repository.LetterFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(public) != 2 {
		t.Errorf("List() returned %d letters, want 2", len(public))
	}
	for _, l := range public {
		if l.IsPrivate {
			t.Errorf("List() returned private letter %s", l.ID)
		}
	}

	all, err := db.Letters().List(ctx, repository.LetterFilter{IncludePrivate: true})
	if err != nil {
		t.Fatalf("List(includePrivate) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(includePrivate) returned %d letters, want 3", len(all))
	}
}

func TestTimeline_MaxOrderAndSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	timeline := db.Timeline()

	_, ok, err := timeline.MaxOrder(ctx)
	if err != nil {
		t.Fatalf("MaxOrder() error = %v", err)
	}
	if ok {
		t.Error("MaxOrder() on empty collection reported ok")
	}

	for _, order := range []int{5, 1, 3} {
		event := &model.TimelineEvent{
			Date: "d", Title: "t", Description: "x", Icon: model.IconHeart, Order: order,
		}
		if err := timeline.Create(ctx, event); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	highest, ok, err := timeline.MaxOrder(ctx)
	if err != nil || !ok || highest != 5 {
		t.Errorf("MaxOrder() = %d, %v, %v; want 5, true, nil", highest, ok, err)
	}

	events, err := timeline.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var got []int
	for _, e := range events {
		got = append(got, e.Order)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("List() orders = %v, want [1 3 5]", got)
	}
}

func TestSettings_GetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	settings := db.Settings()

	if _, err := settings.Get(ctx); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Get() on empty = %v, want ErrNotFound", err)
	}

	first, err := settings.GetOrCreate(ctx, model.DefaultSettings())
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if first.CoupleName != "Our Love Story" {
		t.Errorf("CoupleName = %q, want default", first.CoupleName)
	}

	changed := model.DefaultSettings()
	changed.CoupleName = "Someone else"
	second, err := settings.GetOrCreate(ctx, changed)
	if err != nil {
		t.Fatalf("second GetOrCreate() error = %v", err)
	}
	if second.ID != first.ID || second.CoupleName != "Our Love Story" {
		t.Errorf("second GetOrCreate() = %+v, want the first document", second)
	}

	var rows int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sitesettings`).Scan(&rows); err != nil {
		t.Fatalf("counting settings: %v", err)
	}
	if rows != 1 {
		t.Errorf("settings rows = %d, want 1", rows)
	}
}

func TestSettings_SaveKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.Settings().GetOrCreate(ctx, model.DefaultSettings())
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	created.Venue = "Lisbon"
	if err := db.Settings().Save(ctx, created); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := db.Settings().Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Venue != "Lisbon" {
		t.Errorf("Venue = %q, want Lisbon", got.Venue)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}
