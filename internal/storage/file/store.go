package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// Store keeps each document as one pretty-printed JSON file under dir.
// Replace writes to a temp file and renames it over the target, so readers
// see either the old document or the new one, never a partial write.
type Store struct{ dir string }

func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) Load(ctx context.Context, name string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			observability.ObserveStore("file", "load", "miss")
			return domain.ErrNotFound
		}
		observability.ObserveStore("file", "load", "error")
		return fmt.Errorf("read document %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		observability.ObserveStore("file", "load", "error")
		return fmt.Errorf("decode document %s: %w", name, err)
	}
	observability.ObserveStore("file", "load", "ok")
	return nil
}

func (s *Store) Replace(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("encode document %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.json")
	if err != nil {
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("write document %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("close document %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		observability.ObserveStore("file", "replace", "error")
		return fmt.Errorf("replace document %s: %w", name, err)
	}
	observability.ObserveStore("file", "replace", "ok")
	return nil
}
