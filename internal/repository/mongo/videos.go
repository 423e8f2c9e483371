package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type videoRepo struct{ s *Store }

func (r videoRepo) Create(ctx context.Context, video *model.VideoMemory) error {
	coll, err := r.s.collection(ctx, collVideos)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	id, err := insert(ctx, coll, video)
	if err != nil {
		return err
	}
	video.ID = id
	return nil
}

func (r videoRepo) List(ctx context.Context, filter repository.VideoFilter) ([]model.VideoMemory, error) {
	coll, err := r.s.collection(ctx, collVideos)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.FavoriteOnly {
		query["isFavorite"] = true
	}

	videos := make([]model.VideoMemory, 0)
	if err := findAll(ctx, coll, query, newestFirstSort, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r videoRepo) Update(ctx context.Context, id string, patch model.VideoPatch) (*model.VideoMemory, error) {
	coll, err := r.s.collection(ctx, collVideos)
	if err != nil {
		return nil, err
	}

	var video model.VideoMemory
	if err := patchByID(ctx, coll, "Video", id, patch.Fields(), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r videoRepo) Delete(ctx context.Context, id string) error {
	coll, err := r.s.collection(ctx, collVideos)
	if err != nil {
		return err
	}
	return deleteByID(ctx, coll, "Video", id)
}
