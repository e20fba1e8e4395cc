package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// PostgresStore keeps sessions in the sessions table. Expired rows are
// ignored by Resolve and removed by Purge.
type PostgresStore struct {
	db  dbx.DBTX
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(db dbx.DBTX, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, userID string) (string, error) {
	sess := models.Session{Token: newToken(), UserID: userID, ExpiresAt: s.now().Add(s.ttl)}

	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, sess.Token, sess.UserID, sess.ExpiresAt); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return "", common.ErrorUnauthorized
		}
		return "", common.Unavailable("db error", err)
	}
	return sess.Token, nil
}

func (s *PostgresStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorNotFound
	}

	query := `
		SELECT user_id FROM sessions
		WHERE token = $1 AND expires_at > $2`

	var userID string
	if err := s.db.QueryRowContext(ctx, query, token, s.now()).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", common.Unavailable("db error", err)
	}
	return userID, nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return common.Unavailable("db error", err)
	}
	return nil
}

// Purge deletes expired sessions and reports how many were removed.
func (s *PostgresStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, s.now())
	if err != nil {
		return 0, common.Unavailable("db error", err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return common.Unavailable("db error", err)
	}
	return nil
}
