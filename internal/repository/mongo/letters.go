package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type letterRepo struct{ s *Store }

func (r letterRepo) Create(ctx context.Context, letter *model.LoveLetter) error {
	coll, err := r.s.collection(ctx, collLetters)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	letter.CreatedAt = now
	letter.UpdatedAt = now

	id, err := insert(ctx, coll, letter)
	if err != nil {
		return err
	}
	letter.ID = id
	return nil
}

func (r letterRepo) List(ctx context.Context, filter repository.LetterFilter) ([]model.LoveLetter, error) {
	coll, err := r.s.collection(ctx, collLetters)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if !filter.IncludePrivate {
		query["isPrivate"] = false
	}

	letters := make([]model.LoveLetter, 0)
	if err := findAll(ctx, coll, query, newestFirstSort, &letters); err != nil {
		return nil, err
	}
	return letters, nil
}
