// Package sessions maps opaque bearer tokens to user ids for a fixed lifetime.
package sessions

import (
	"context"

	"github.com/google/uuid"
)

// Store issues, resolves and revokes session tokens.
//
// Resolve returns common.ErrorNotFound for unknown or expired tokens.
// Destroy is idempotent. Backend failures wrap common.ErrServiceUnavailable.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}

// newToken is a seam for tests that need predictable tokens.
var newToken = uuid.NewString
