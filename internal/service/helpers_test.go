package service_test

import (
	"alcyxob/coach-log/internal/metrics"
	"alcyxob/coach-log/internal/repository"
	"alcyxob/coach-log/internal/repository/file"
	"alcyxob/coach-log/internal/service"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"
)

const testKey = "coach_demo_app_v1"

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newMemRepo() repository.BlobRepository {
	return file.NewFileBlobRepository(afero.NewMemMapFs(), "data")
}

func newTestService(t *testing.T, repo repository.BlobRepository) (service.SessionService, *metrics.Manager) {
	t.Helper()
	m := metrics.NewTestManager()
	persister := service.NewPersister(repo, testKey, time.Second, m)
	svc := service.NewSessionService(context.Background(), persister, m,
		service.WithClock(fixedClock),
		service.WithIDGenerator(sequentialIDs()),
	)
	return svc, m
}

// failingRepo fails every call.
type failingRepo struct {
	puts int
}

func (r *failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("storage offline")
}

func (r *failingRepo) Put(ctx context.Context, key string, data []byte) error {
	r.puts++
	return fmt.Errorf("quota exceeded")
}
