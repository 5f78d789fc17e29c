package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrEmptyKey = RepositoryError("blob key is empty")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// BlobRepository is an opaque key-value store holding whole documents.
// Implementations return ErrNotFound when no document exists under key.
type BlobRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
