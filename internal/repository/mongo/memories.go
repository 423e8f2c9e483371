package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type memoryRepo struct{ s *Store }

func (r memoryRepo) Create(ctx context.Context, memory *model.Memory) error {
	coll, err := r.s.collection(ctx, collMemories)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	memory.CreatedAt = now
	memory.UpdatedAt = now

	id, err := insert(ctx, coll, memory)
	if err != nil {
		return err
	}
	memory.ID = id
	return nil
}

func (r memoryRepo) List(ctx context.Context, filter repository.MemoryFilter) ([]model.Memory, error) {
	coll, err := r.s.collection(ctx, collMemories)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.FavoriteOnly {
		query["isFavorite"] = true
	}

	memories := make([]model.Memory, 0)
	if err := findAll(ctx, coll, query, newestFirstSort, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

func (r memoryRepo) Update(ctx context.Context, id string, patch model.MemoryPatch) (*model.Memory, error) {
	coll, err := r.s.collection(ctx, collMemories)
	if err != nil {
		return nil, err
	}

	var memory model.Memory
	if err := patchByID(ctx, coll, "Memory", id, patch.Fields(), &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

func (r memoryRepo) Delete(ctx context.Context, id string) error {
	coll, err := r.s.collection(ctx, collMemories)
	if err != nil {
		return err
	}
	return deleteByID(ctx, coll, "Memory", id)
}
