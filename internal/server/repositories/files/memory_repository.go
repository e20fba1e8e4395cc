package files

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps the catalog in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.FileRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]*models.FileRecord)}
}

func (r *InMemoryRepository) Create(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !rec.Parent.IsRoot() {
		parent, ok := r.records[rec.Parent.ID()]
		if !ok || !parent.Type.IsFolder() {
			return nil, common.ErrInvalidParent
		}
	}

	rec.ID = uuid.NewString()
	stored := *rec
	r.records[rec.ID] = &stored
	return rec, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *rec
	return &out, nil
}

func (r *InMemoryRepository) ListChildren(ctx context.Context, userID string, parent models.ParentRef) ([]*models.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.FileRecord
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Parent == parent {
			out := *rec
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *InMemoryRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return common.ErrorNotFound
	}
	rec.IsPublic = isPublic
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}
