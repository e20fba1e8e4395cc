// Package files is the file catalog: metadata for files and folders,
// covering ownership, hierarchy and visibility. Bytes live in the blob store.
package files

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// Repository persists catalog records.
//
// Create validates the parent atomically with the insert: a non-root parent
// must exist and be a folder, otherwise common.ErrInvalidParent. GetByID
// returns common.ErrorNotFound for absent or malformed ids. ListChildren
// returns only records owned by userID under parent, in no particular order.
// SetVisibility does no authorization; callers must.
type Repository interface {
	Create(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
	ListChildren(ctx context.Context, userID string, parent models.ParentRef) ([]*models.FileRecord, error)
	SetVisibility(ctx context.Context, id string, isPublic bool) error
	Count(ctx context.Context) (int64, error)
}
