package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/scrapbook/internal/model"
)

type timelineRepo struct{ s *Store }

func (r timelineRepo) Create(ctx context.Context, event *model.TimelineEvent) error {
	coll, err := r.s.collection(ctx, collTimeline)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	id, err := insert(ctx, coll, event)
	if err != nil {
		return err
	}
	event.ID = id
	return nil
}

func (r timelineRepo) List(ctx context.Context) ([]model.TimelineEvent, error) {
	coll, err := r.s.collection(ctx, collTimeline)
	if err != nil {
		return nil, err
	}

	events := make([]model.TimelineEvent, 0)
	sort := bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
	if err := findAll(ctx, coll, bson.M{}, sort, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r timelineRepo) MaxOrder(ctx context.Context) (int, bool, error) {
	coll, err := r.s.collection(ctx, collTimeline)
	if err != nil {
		return 0, false, err
	}

	var last struct {
		Order int `bson:"order"`
	}
	err = coll.FindOne(ctx, bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "order", Value: -1}}).
			SetProjection(bson.M{"order": 1}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("mongo: reading max timeline order: %w", err)
	}
	return last.Order, true, nil
}
