package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
)

// The singleton lives under the fixed primary key model.SettingsKey, so a
// second settings row cannot exist.
type settingsRepo struct{ db *DB }

func (r settingsRepo) Get(ctx context.Context) (*model.SiteSettings, error) {
	var settings model.SiteSettings
	found, err := getDoc(ctx, r.db.conn, tableSettings, model.SettingsKey, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("Settings", model.SettingsKey)
	}
	settings.Key = model.SettingsKey
	return &settings, nil
}

// GetOrCreate inserts defaults only if the row is missing, then reads back
// whichever document won.
func (r settingsRepo) GetOrCreate(ctx context.Context, defaults model.SiteSettings) (*model.SiteSettings, error) {
	now := time.Now().UTC()
	defaults.ID = model.SettingsKey
	defaults.Key = model.SettingsKey
	defaults.CreatedAt = now
	defaults.UpdatedAt = now

	raw, err := json.Marshal(&defaults)
	if err != nil {
		return nil, fmt.Errorf("sqlite: encoding settings: %w", err)
	}

	_, err = r.db.conn.ExecContext(ctx,
		`INSERT INTO sitesettings (id, doc, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		model.SettingsKey, string(raw), timeKey(now),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating default settings: %w", err)
	}

	return r.Get(ctx)
}

func (r settingsRepo) Save(ctx context.Context, settings *model.SiteSettings) error {
	now := time.Now().UTC()
	settings.ID = model.SettingsKey
	settings.Key = model.SettingsKey
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("sqlite: encoding settings: %w", err)
	}

	_, err = r.db.conn.ExecContext(ctx,
		`INSERT INTO sitesettings (id, doc, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		model.SettingsKey, string(raw), timeKey(settings.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving settings: %w", err)
	}
	return nil
}
