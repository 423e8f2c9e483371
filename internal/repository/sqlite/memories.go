package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type memoryRepo struct{ db *DB }

func (r memoryRepo) Create(ctx context.Context, memory *model.Memory) error {
	memory.ID = xid.New().String()
	now := time.Now().UTC()
	memory.CreatedAt = now
	memory.UpdatedAt = now

	return insertDoc(ctx, r.db.conn, tableMemories, memory.ID, now, memory)
}

func (r memoryRepo) List(ctx context.Context, filter repository.MemoryFilter) ([]model.Memory, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, `json_extract(doc, '$.type') = ?`)
		args = append(args, string(filter.Type))
	}
	if filter.FavoriteOnly {
		where = append(where, `json_extract(doc, '$.isFavorite') = 1`)
	}

	query := `SELECT doc FROM memories`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	return listDocs[model.Memory](ctx, r.db.conn, query, args...)
}

// Update reads, patches and rewrites the document in one transaction.
func (r memoryRepo) Update(ctx context.Context, id string, patch model.MemoryPatch) (*model.Memory, error) {
	var memory model.Memory

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		found, err := getDoc(ctx, tx, tableMemories, id, &memory)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("Memory", id)
		}

		patch.Apply(&memory)
		memory.UpdatedAt = time.Now().UTC()
		return replaceDoc(ctx, tx, tableMemories, id, &memory)
	})
	if err != nil {
		return nil, err
	}

	return &memory, nil
}

func (r memoryRepo) Delete(ctx context.Context, id string) error {
	deleted, err := deleteDoc(ctx, r.db.conn, tableMemories, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Memory", id)
	}
	return nil
}
