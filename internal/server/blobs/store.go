// Package blobs stores file payloads. The catalog keeps only the opaque
// path a Store hands back from Write.
package blobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists payload bytes. Write failures wrap
// common.ErrStorageWriteFailed; Read of an unknown path returns
// common.ErrorNotFound.
type Store interface {
	Write(ctx context.Context, data []byte) (string, error)
	Read(ctx context.Context, path string) ([]byte, error)
}

// newName yields a fresh, extension-less blob name.
var newName = func() string { return uuid.NewString() }

// storageKey spreads object keys by upload date.
func storageKey(now time.Time, name string) string {
	return fmt.Sprintf("files/%d/%d/%d/%s", now.Year(), now.Month(), now.Day(), name)
}
