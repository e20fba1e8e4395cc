// Package users declares the account store and its Postgres, MongoDB and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// Repository persists registered users. Lookups of absent users return
// common.ErrorNotFound; creating a duplicate email returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
