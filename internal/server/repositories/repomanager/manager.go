// Package repomanager bundles the user and catalog repositories of one
// database backend together with its migration and lifecycle hooks.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Files() files.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
