// Package filex contains filesystem helpers shared by the storage backends.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EnsureDir creates dir and any missing parents. It is safe to call from
// many goroutines at once: a directory that already exists, including one
// created concurrently by another caller, counts as success.
func EnsureDir(dir string, perm os.FileMode) error {
	err := os.MkdirAll(dir, perm)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		if fi, statErr := os.Stat(dir); statErr == nil && fi.IsDir() {
			return nil
		}
	}
	return fmt.Errorf("mkdir %s: %w", dir, err)
}
