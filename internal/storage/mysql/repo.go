package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// Repo stores each document as one row in the documents table. The upsert
// replaces the whole body in a single statement, which gives the atomic
// whole-document semantics the selection store relies on.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the documents table if it is missing. The schema is a
// single table, so it lives here instead of a migrations directory.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createDocumentsSQL)
	return err
}

func (r *Repo) Load(ctx context.Context, name string, dst any) error {
	var body []byte
	err := r.db.QueryRowContext(ctx, getDocumentSQL, name).Scan(&body)
	if err == sql.ErrNoRows {
		observability.ObserveStore("mysql", "load", "miss")
		return domain.ErrNotFound
	}
	if err != nil {
		observability.ObserveStore("mysql", "load", "error")
		return fmt.Errorf("select document %s: %w", name, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		observability.ObserveStore("mysql", "load", "error")
		return fmt.Errorf("decode document %s: %w", name, err)
	}
	observability.ObserveStore("mysql", "load", "ok")
	return nil
}

func (r *Repo) Replace(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		observability.ObserveStore("mysql", "replace", "error")
		return fmt.Errorf("encode document %s: %w", name, err)
	}
	if _, err := r.db.ExecContext(ctx, upsertDocumentSQL, name, string(body)); err != nil {
		observability.ObserveStore("mysql", "replace", "error")
		return fmt.Errorf("upsert document %s: %w", name, err)
	}
	observability.ObserveStore("mysql", "replace", "ok")
	return nil
}
