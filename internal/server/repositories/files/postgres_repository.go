package files

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements the catalog over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, user_id, name, type, parent_id, is_public, local_path FROM files`

// Create inserts rec only if its parent is the root or an existing folder.
// The check and the insert are one statement, so a parent deleted or
// retyped in between cannot slip through.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.FileRecord) (*models.FileRecord, error) {
	var parent any
	if !rec.Parent.IsRoot() {
		if uuid.Validate(rec.Parent.ID()) != nil {
			return nil, common.ErrInvalidParent
		}
		parent = rec.Parent.ID()
	}

	var localPath any
	if rec.LocalPath != "" {
		localPath = rec.LocalPath
	}

	query := `
		INSERT INTO files (user_id, name, type, parent_id, is_public, local_path)
		SELECT $1, $2, $3, $4::uuid, $5, $6
		WHERE $4::uuid IS NULL
		   OR EXISTS (SELECT 1 FROM files WHERE id = $4::uuid AND type = 'folder')
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Name, string(rec.Type), parent, rec.IsPublic, localPath).Scan(&rec.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrInvalidParent
		}
		return nil, common.Unavailable("db error", err)
	}

	return rec, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, common.Unavailable("db error", err)
	}
	return rec, nil
}

// ListChildren reads the whole level in one query.
func (r *PostgresRepository) ListChildren(ctx context.Context, userID string, parent models.ParentRef) ([]*models.FileRecord, error) {
	var parentArg any
	if !parent.IsRoot() {
		if uuid.Validate(parent.ID()) != nil {
			return nil, nil
		}
		parentArg = parent.ID()
	}

	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid`,
		userID, parentArg)
	if err != nil {
		return nil, common.Unavailable("failed to select files", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, common.Unavailable("failed to scan file", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Unavailable("failed to select files", err)
	}
	return result, nil
}

func (r *PostgresRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	if uuid.Validate(id) != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `UPDATE files SET is_public = $2 WHERE id = $1`, id, isPublic)
	if err != nil {
		return common.Unavailable("db error", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.Unavailable("rows affected error", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, common.Unavailable("db error", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.FileRecord, error) {
	var (
		rec       models.FileRecord
		fileType  string
		parentID  sql.NullString
		localPath sql.NullString
	)
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Name, &fileType, &parentID, &rec.IsPublic, &localPath); err != nil {
		return nil, err
	}

	rec.Type = models.FileType(fileType)
	rec.Parent = models.InFolder(parentID.String)
	rec.LocalPath = localPath.String
	return &rec, nil
}
