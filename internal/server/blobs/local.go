package blobs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
)

// LocalStore writes each payload to its own file under dir. The directory
// is created on first write.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Write(ctx context.Context, data []byte) (string, error) {
	if err := filex.EnsureDir(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrStorageWriteFailed, err)
	}

	path := filepath.Join(s.dir, newName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrStorageWriteFailed, err)
	}
	return path, nil
}

func (s *LocalStore) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, common.Unavailable("read blob", err)
	}
	return data, nil
}
