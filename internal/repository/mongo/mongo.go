// Package mongo implements the repository interfaces on MongoDB.
//
// Collections and field names match the documents the existing site stores,
// so an existing database is served as-is. Ids are ObjectIDs in the database
// and hex strings everywhere else.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/repository"
)

const (
	collTimeline = "timelineevents"
	collLetters  = "loveletters"
	collMemories = "memories"
	collVideos   = "videomemories"
	collSettings = "sitesettings"
)

// Store is a MongoDB-backed repository.Store. Every repository resolves its
// collection through the shared Connector on each call.
type Store struct {
	conn     *Connector
	database string
	logger   *slog.Logger
}

var _ repository.Store = (*Store)(nil)

// IsURI reports whether uri selects this backend.
func IsURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://")
}

// New prepares a store for uri without connecting. The database named in the
// URI path wins over defaultDatabase.
func New(uri, defaultDatabase string, logger *slog.Logger) (*Store, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("mongo: parsing connection string: %w", err)
	}

	database := cs.Database
	if database == "" {
		database = defaultDatabase
	}

	s := &Store{
		conn:     NewConnector(uri, logger),
		database: database,
		logger:   logger,
	}
	s.conn.OnConnect(s.ensureIndexes)
	return s, nil
}

func (s *Store) Letters() repository.LetterRepository { return letterRepo{s} }
func (s *Store) Memories() repository.MemoryRepository { return memoryRepo{s} }
func (s *Store) Videos() repository.VideoRepository { return videoRepo{s} }
func (s *Store) Timeline() repository.TimelineRepository { return timelineRepo{s} }
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

// Ping forces the shared connection and checks the server answers.
func (s *Store) Ping(ctx context.Context) error {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.database).Collection(name), nil
}

// ensureIndexes creates the sort-key indexes and the settings uniqueness
// constraint, then adopts a keyless settings document if one exists.
func (s *Store) ensureIndexes(ctx context.Context, client *mongo.Client) error {
	db := client.Database(s.database)

	newestFirst := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	for _, name := range []string{collLetters, collMemories, collVideos} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, newestFirst); err != nil {
			return fmt.Errorf("indexing %s: %w", name, err)
		}
	}

	_, err := db.Collection(collTimeline).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("indexing %s: %w", collTimeline, err)
	}

	_, err = db.Collection(collSettings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "key", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"key": bson.M{"$exists": true}}),
	})
	if err != nil {
		return fmt.Errorf("indexing %s: %w", collSettings, err)
	}

	// Adopt after the unique index exists so concurrent adopters cannot
	// both stamp a document.
	_, err = s.adoptLegacySettings(ctx, db.Collection(collSettings))
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	s.logger.Debug("mongodb indexes ensured", slog.String("database", s.database))
	return nil
}

// toDocument marshals v and drops the fields named in omit.
func toDocument(v any, omit ...string) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(omit) == 0 {
		return doc, nil
	}

	kept := doc[:0]
	for _, e := range doc {
		skip := false
		for _, name := range omit {
			if e.Key == name {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// insert stores v under a new ObjectID and returns its hex form.
func insert(ctx context.Context, coll *mongo.Collection, v any) (string, error) {
	doc, err := toDocument(v, "_id")
	if err != nil {
		return "", fmt.Errorf("mongo: encoding %s document: %w", coll.Name(), err)
	}

	oid := primitive.NewObjectID()
	doc = append(bson.D{{Key: "_id", Value: oid}}, doc...)

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo: inserting into %s: %w", coll.Name(), err)
	}
	return oid.Hex(), nil
}

// objectID parses a hex id. An id that cannot be an ObjectID matches no
// document, so it is reported as not found.
func objectID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(resource, id)
	}
	return oid, nil
}

// patchByID applies fields with $set and decodes the updated document into
// dst.
func patchByID(ctx context.Context, coll *mongo.Collection, resource, id string, fields map[string]any, dst any) error {
	oid, err := objectID(resource, id)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(resource, id)
	}
	if err != nil {
		return fmt.Errorf("mongo: updating %s %s: %w", coll.Name(), id, err)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, resource, id string) error {
	oid, err := objectID(resource, id)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: deleting %s %s: %w", coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

// findAll runs a sorted find and decodes every match into dst, a pointer to
// a slice.
func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, dst any) error {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return fmt.Errorf("mongo: querying %s: %w", coll.Name(), err)
	}
	if err := cursor.All(ctx, dst); err != nil {
		return fmt.Errorf("mongo: reading %s: %w", coll.Name(), err)
	}
	return nil
}

var newestFirstSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
