package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// Store keeps each document under one redis key. SET replaces the whole
// value atomically, which is exactly the replace semantics the selection
// store needs from its persistence collaborator.
type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func key(name string) string { return "doc:" + name }

func (s *Store) Load(ctx context.Context, name string, dst any) error {
	b, err := s.c.Get(ctx, key(name)).Bytes()
	if err == redis.Nil {
		observability.ObserveStore("redis", "load", "miss")
		return domain.ErrNotFound
	}
	if err != nil {
		observability.ObserveStore("redis", "load", "error")
		return fmt.Errorf("get document %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		observability.ObserveStore("redis", "load", "error")
		return fmt.Errorf("decode document %s: %w", name, err)
	}
	observability.ObserveStore("redis", "load", "ok")
	return nil
}

func (s *Store) Replace(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		observability.ObserveStore("redis", "replace", "error")
		return fmt.Errorf("encode document %s: %w", name, err)
	}
	if err := s.c.Set(ctx, key(name), b, 0).Err(); err != nil {
		observability.ObserveStore("redis", "replace", "error")
		return fmt.Errorf("set document %s: %w", name, err)
	}
	observability.ObserveStore("redis", "replace", "ok")
	return nil
}
