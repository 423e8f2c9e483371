package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/scrapbook/internal/model"
)

type timelineRepo struct{ db *DB }

func (r timelineRepo) Create(ctx context.Context, event *model.TimelineEvent) error {
	event.ID = xid.New().String()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	return insertDoc(ctx, r.db.conn, tableTimeline, event.ID, now, event)
}

func (r timelineRepo) List(ctx context.Context) ([]model.TimelineEvent, error) {
	return listDocs[model.TimelineEvent](ctx, r.db.conn, `
		SELECT doc FROM timelineevents
		ORDER BY json_extract(doc, '$.order') ASC, created_at ASC
	`)
}

func (r timelineRepo) MaxOrder(ctx context.Context) (int, bool, error) {
	var highest sql.NullInt64
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT MAX(json_extract(doc, '$.order')) FROM timelineevents`,
	).Scan(&highest)
	if err != nil {
		return 0, false, fmt.Errorf("sqlite: reading max timeline order: %w", err)
	}
	if !highest.Valid {
		return 0, false, nil
	}
	return int(highest.Int64), true, nil
}
