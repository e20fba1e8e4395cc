// Package services contains server-side business logic: authentication and
// sessions, the file catalog operations and service status.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Digest(password string) ([]byte, error)
	Matches(digest []byte, password string) bool
}

// AuthService registers users, exchanges credentials for session tokens and
// resolves tokens back to user ids.
type AuthService struct {
	users    users.Repository
	sessions sessions.Store
	hasher   PasswordHasher
	log      logging.Logger
}

func NewAuthService(u users.Repository, s sessions.Store, h PasswordHasher, log logging.Logger) *AuthService {
	return &AuthService{users: u, sessions: s, hasher: h, log: log.With("module", "auth")}
}

// Register creates a user. Emails are unique; a duplicate yields
// common.ErrorAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, common.ErrMissingEmail
	}
	if password == "" {
		return nil, common.ErrMissingPassword
	}

	digest, err := s.hasher.Digest(password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &models.User{Email: email, PasswordDigest: digest})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the Basic credentials in authHeader and opens a session.
// Malformed headers, unknown emails and wrong passwords all yield
// common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, authHeader string) (string, error) {
	email, password, err := auth.ParseBasicCredentials(authHeader)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	if !s.hasher.Matches(u.PasswordDigest, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "session opened", "user_id", u.ID)
	return token, nil
}

// Authenticate resolves token to a user id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}

	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	return userID, nil
}

// Logout destroys the session behind token. A token that no longer
// resolves is rejected rather than silently accepted.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}

	s.log.Info(ctx, "session closed", "user_id", userID)
	return nil
}

// Me returns the user behind token.
func (s *AuthService) Me(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return u, nil
}
