package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/scrapbook/internal/apperror"
	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type videoRepo struct{ db *DB }

func (r videoRepo) Create(ctx context.Context, video *model.VideoMemory) error {
	video.ID = xid.New().String()
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	return insertDoc(ctx, r.db.conn, tableVideos, video.ID, now, video)
}

func (r videoRepo) List(ctx context.Context, filter repository.VideoFilter) ([]model.VideoMemory, error) {
	query := `SELECT doc FROM videomemories`
	if filter.FavoriteOnly {
		query += ` WHERE json_extract(doc, '$.isFavorite') = 1`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	return listDocs[model.VideoMemory](ctx, r.db.conn, query)
}

func (r videoRepo) Update(ctx context.Context, id string, patch model.VideoPatch) (*model.VideoMemory, error) {
	var video model.VideoMemory

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		found, err := getDoc(ctx, tx, tableVideos, id, &video)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("Video", id)
		}

		patch.Apply(&video)
		video.UpdatedAt = time.Now().UTC()
		return replaceDoc(ctx, tx, tableVideos, id, &video)
	})
	if err != nil {
		return nil, err
	}

	return &video, nil
}

func (r videoRepo) Delete(ctx context.Context, id string) error {
	deleted, err := deleteDoc(ctx, r.db.conn, tableVideos, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Video", id)
	}
	return nil
}
