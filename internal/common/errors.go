// Package common defines shared constants and sentinel errors used across
// the storage, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")

	// Registration errors.
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")

	// Upload validation errors.
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing type")
	ErrMissingData     = errors.New("missing data")
	ErrInvalidData     = errors.New("invalid data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")

	// Catalog-level parent check, raised when the parent disappeared or is
	// not a folder at insert time.
	ErrInvalidParent = errors.New("invalid parent")

	// Blob errors.
	ErrStorageWriteFailed = errors.New("cannot write file")

	// Content requested for a folder.
	ErrNotAFile = errors.New("not a file")
)

// Unavailable marks err as an infrastructure failure of the named operation,
// e.g. Unavailable("db error", err) -> "db error: service unavailable: <err>".
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrServiceUnavailable, err)
}
