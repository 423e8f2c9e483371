package sqlite

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/repository"
)

type letterRepo struct{ db *DB }

func (r letterRepo) Create(ctx context.Context, letter *model.LoveLetter) error {
	letter.ID = xid.New().String()
	now := time.Now().UTC()
	letter.CreatedAt = now
	letter.UpdatedAt = now

	return insertDoc(ctx, r.db.conn, tableLetters, letter.ID, now, letter)
}

func (r letterRepo) List(ctx context.Context, filter repository.LetterFilter) ([]model.LoveLetter, error) {
	query := `SELECT doc FROM loveletters`
	if !filter.IncludePrivate {
		query += ` WHERE json_extract(doc, '$.isPrivate') = 0`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	return listDocs[model.LoveLetter](ctx, r.db.conn, query)
}
