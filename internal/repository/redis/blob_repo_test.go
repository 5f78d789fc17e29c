package redis

import (
	"alcyxob/coach-log/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

const testKey = "coach_demo_app_v1"

func TestRedisBlobRepository_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisBlobRepository(db)

	mock.ExpectGet(testKey).SetVal(`{"day":"2025-03-10"}`)
	data, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, `{"day":"2025-03-10"}`, string(data))

	mock.ExpectGet(testKey).SetErr(redis.Nil)
	_, err = repo.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectGet(testKey).SetErr(errors.New("connection refused"))
	_, err = repo.Get(context.Background(), testKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBlobRepository_Put(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisBlobRepository(db)

	data := []byte(`{"logs":[]}`)
	mock.ExpectSet(testKey, string(data), 0).SetVal("OK")
	require.NoError(t, repo.Put(context.Background(), testKey, data))

	mock.ExpectSet(testKey, string(data), 0).SetErr(redis.ErrClosed)
	assert.ErrorIs(t, repo.Put(context.Background(), testKey, data), redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisBlobRepository_EmptyKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	repo := NewRedisBlobRepository(db)

	_, err := repo.Get(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrEmptyKey)
	assert.ErrorIs(t, repo.Put(context.Background(), "", nil), repository.ErrEmptyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
