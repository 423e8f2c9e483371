package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
)

// The singleton is the document whose key equals model.SettingsKey; a
// unique index on key keeps it single. Documents saved before the key field
// existed have no key and are adopted on first read.
type settingsRepo struct{ s *Store }

var (
	settingsFilter       = bson.M{"key": model.SettingsKey}
	legacySettingsFilter = bson.M{"key": bson.M{"$exists": false}}
)

func (r settingsRepo) Get(ctx context.Context) (*model.SiteSettings, error) {
	coll, err := r.s.collection(ctx, collSettings)
	if err != nil {
		return nil, err
	}
	return r.s.lookupSettings(ctx, coll)
}

// GetOrCreate upserts defaults with $setOnInsert, which leaves an existing
// document untouched. Two racing upserts can both miss; the loser hits the
// unique index and reads the winner's document instead.
func (r settingsRepo) GetOrCreate(ctx context.Context, defaults model.SiteSettings) (*model.SiteSettings, error) {
	coll, err := r.s.collection(ctx, collSettings)
	if err != nil {
		return nil, err
	}

	existing, err := r.s.lookupSettings(ctx, coll)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	defaults.CreatedAt = now
	defaults.UpdatedAt = now

	doc, err := toDocument(defaults, "_id", "key")
	if err != nil {
		return nil, fmt.Errorf("mongo: encoding settings: %w", err)
	}

	var settings model.SiteSettings
	err = coll.FindOneAndUpdate(ctx,
		settingsFilter,
		bson.M{"$setOnInsert": doc},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&settings)
	if mongo.IsDuplicateKeyError(err) {
		return findSettings(ctx, coll)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: creating default settings: %w", err)
	}
	return &settings, nil
}

func (r settingsRepo) Save(ctx context.Context, settings *model.SiteSettings) error {
	coll, err := r.s.collection(ctx, collSettings)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	settings.Key = model.SettingsKey
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	doc, err := toDocument(settings, "_id")
	if err != nil {
		return fmt.Errorf("mongo: encoding settings: %w", err)
	}

	result, err := coll.ReplaceOne(ctx, settingsFilter, doc, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("Settings", model.SettingsKey)
	}
	if err != nil {
		return fmt.Errorf("mongo: saving settings: %w", err)
	}
	if id, ok := result.UpsertedID.(interface{ Hex() string }); ok {
		settings.ID = id.Hex()
	}
	return nil
}

func findSettings(ctx context.Context, coll *mongo.Collection) (*model.SiteSettings, error) {
	var settings model.SiteSettings
	err := coll.FindOne(ctx, settingsFilter).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("Settings", model.SettingsKey)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: reading settings: %w", err)
	}
	return &settings, nil
}

// lookupSettings reads the keyed singleton, falling back to adopting the
// oldest keyless document.
func (s *Store) lookupSettings(ctx context.Context, coll *mongo.Collection) (*model.SiteSettings, error) {
	settings, err := findSettings(ctx, coll)
	if errors.Is(err, apperror.ErrNotFound) {
		return s.adoptLegacySettings(ctx, coll)
	}
	return settings, err
}

// adoptLegacySettings stamps the oldest keyless document with the singleton
// key. Losing the race to another adopter reads the winner's document.
func (s *Store) adoptLegacySettings(ctx context.Context, coll *mongo.Collection) (*model.SiteSettings, error) {
	var settings model.SiteSettings
	err := coll.FindOneAndUpdate(ctx,
		legacySettingsFilter,
		bson.M{"$set": bson.M{"key": model.SettingsKey}},
		options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
			SetReturnDocument(options.After),
	).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("Settings", model.SettingsKey)
	}
	if mongo.IsDuplicateKeyError(err) {
		return findSettings(ctx, coll)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: adopting settings: %w", err)
	}

	s.logger.Info("adopted legacy settings document", slog.String("id", settings.ID))
	return &settings, nil
}
