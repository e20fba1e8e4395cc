package repomanager

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. Nothing
// survives a restart.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	files *files.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		files: files.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Files() files.Repository { return m.files }

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close(ctx context.Context) error { return nil }
