package redis

import (
	"alcyxob/coach-log/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// redisBlobRepository stores each document as a plain string value.
type redisBlobRepository struct {
	client redis.Cmdable
}

// NewRedisBlobRepository creates a blob repository backed by Redis.
func NewRedisBlobRepository(client redis.Cmdable) repository.BlobRepository {
	return &redisBlobRepository{client: client}
}

// Get returns the value under key.
func (r *redisBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

// Put sets the value under key without expiry.
func (r *redisBlobRepository) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
