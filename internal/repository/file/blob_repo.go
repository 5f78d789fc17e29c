package file

import (
	"alcyxob/coach-log/internal/repository"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const blobExtension = ".json"

// fileBlobRepository keeps one file per key inside dir.
type fileBlobRepository struct {
	fs  afero.Fs
	dir string
}

// NewFileBlobRepository creates a blob repository on top of fs.
// Pass afero.NewOsFs() for disk storage or afero.NewMemMapFs() for a throwaway store.
func NewFileBlobRepository(fs afero.Fs, dir string) repository.BlobRepository {
	return &fileBlobRepository{fs: fs, dir: dir}
}

func (r *fileBlobRepository) path(key string) (string, error) {
	if key == "" {
		return "", repository.ErrEmptyKey
	}
	// Keys are flat names; keep them from escaping dir.
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(r.dir, name+blobExtension), nil
}

// Get reads the document stored under key.
func (r *fileBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(r.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}

// Put replaces the document under key. The write goes to a temp file first
// and is renamed into place, so a crash never leaves a half-written blob.
func (r *fileBlobRepository) Put(ctx context.Context, key string, data []byte) error {
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	if err := r.fs.Rename(tmp, p); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("rename blob %q: %w", key, err)
	}
	return nil
}
