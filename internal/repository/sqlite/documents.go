package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// timeKey formats t so that lexical order equals time order.
func timeKey(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func insertDoc(ctx context.Context, q querier, table, id string, createdAt time.Time, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sqlite: encoding %s document: %w", table, err)
	}

	_, err = q.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, created_at) VALUES (?, ?, ?)`, table),
		id, string(raw), timeKey(createdAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting into %s: %w", table, err)
	}
	return nil
}

// getDoc decodes the document with id into dst. found is false when no
// row matches.
func getDoc(ctx context.Context, q querier, table, id string, dst any) (found bool, err error) {
	var raw string
	err = q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, table),
		id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: reading %s %s: %w", table, id, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("sqlite: decoding %s %s: %w", table, id, err)
	}
	return true, nil
}

func replaceDoc(ctx context.Context, q querier, table, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sqlite: encoding %s document: %w", table, err)
	}

	_, err = q.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET doc = ? WHERE id = ?`, table),
		string(raw), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating %s %s: %w", table, id, err)
	}
	return nil
}

// deleteDoc removes the row with id; deleted is false when none matched.
func deleteDoc(ctx context.Context, q querier, table, id string) (deleted bool, err error) {
	result, err := q.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting %s %s: %w", table, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// listDocs runs query, which must select a single doc column, and decodes
// every row into a T.
func listDocs[T any](ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing documents: %w", err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("sqlite: scanning document row: %w", err)
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("sqlite: decoding document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating documents: %w", err)
	}

	return docs, nil
}

// inTx runs fn inside a transaction, committing only when fn succeeds.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}
