package services

import (
	"context"
	"encoding/base64"
	"errors"
	"iter"
	"mime"
	"path/filepath"
	"slices"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobs"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

// DefaultMimeType is reported when the name carries no known extension.
const DefaultMimeType = "application/octet-stream"

// UploadRequest carries the fields of an upload. Data is base64 and is
// required unless Type is folder.
type UploadRequest struct {
	Name     string
	Type     string
	Parent   models.ParentRef
	IsPublic bool
	Data     string
}

// Content is a downloaded payload together with its MIME hint.
type Content struct {
	Name     string
	MimeType string
	Data     []byte
}

// FileService implements the catalog operations. Every read of someone
// else's private record fails exactly like a read of a missing one.
type FileService struct {
	users users.Repository
	files files.Repository
	blobs blobs.Store
	log   logging.Logger
}

func NewFileService(u users.Repository, f files.Repository, b blobs.Store, log logging.Logger) *FileService {
	return &FileService{users: u, files: f, blobs: b, log: log.With("module", "files")}
}

// Upload validates req, stores the payload for non-folder types and
// records the entry. Checks run in a fixed order: name, type, data, parent,
// owner.
func (s *FileService) Upload(ctx context.Context, userID string, req UploadRequest) (*models.FileRecord, error) {
	if req.Name == "" {
		return nil, common.ErrMissingName
	}

	fileType, ok := models.ParseFileType(req.Type)
	if !ok {
		return nil, common.ErrMissingType
	}

	if fileType.HasContent() && req.Data == "" {
		return nil, common.ErrMissingData
	}

	if !req.Parent.IsRoot() {
		parent, err := s.files.GetByID(ctx, req.Parent.ID())
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, err
		}
		if !parent.Type.IsFolder() {
			return nil, common.ErrParentNotFolder
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	rec := &models.FileRecord{
		UserID:   userID,
		Name:     req.Name,
		Type:     fileType,
		Parent:   req.Parent,
		IsPublic: req.IsPublic,
	}

	if fileType.HasContent() {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, common.ErrInvalidData
		}

		path, err := s.blobs.Write(ctx, data)
		if err != nil {
			s.log.Warn(ctx, "blob write failed", "user_id", userID, "error", err)
			return nil, err
		}
		rec.LocalPath = path
	}

	created, err := s.files.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "file uploaded", "file_id", created.ID, "user_id", userID, "type", string(fileType))
	return created, nil
}

// Show returns a record owned by userID.
func (s *FileService) Show(ctx context.Context, userID, fileID string) (*models.FileRecord, error) {
	rec, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !rec.IsOwnedBy(userID) {
		return nil, common.ErrorNotFound
	}
	return rec, nil
}

// List yields the records userID owns directly under parent. The sequence
// is materialized once and can be ranged over repeatedly.
func (s *FileService) List(ctx context.Context, userID string, parent models.ParentRef) (iter.Seq[*models.FileRecord], error) {
	recs, err := s.files.ListChildren(ctx, userID, parent)
	if err != nil {
		return nil, err
	}
	return slices.Values(recs), nil
}

// SetPublish changes the visibility of a record owned by userID and
// returns the updated record.
func (s *FileService) SetPublish(ctx context.Context, userID, fileID string, isPublic bool) (*models.FileRecord, error) {
	rec, err := s.Show(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.files.SetVisibility(ctx, rec.ID, isPublic); err != nil {
		return nil, err
	}
	rec.IsPublic = isPublic

	s.log.Info(ctx, "visibility changed", "file_id", rec.ID, "public", isPublic)
	return rec, nil
}

// Download returns the payload of a public record, or of a private one to
// its owner. requesterID is empty for anonymous callers.
func (s *FileService) Download(ctx context.Context, requesterID, fileID string) (*Content, error) {
	rec, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !rec.IsPublic && !rec.IsOwnedBy(requesterID) {
		return nil, common.ErrorNotFound
	}

	if rec.Type.IsFolder() {
		return nil, common.ErrNotAFile
	}

	data, err := s.blobs.Read(ctx, rec.LocalPath)
	if err != nil {
		s.log.Warn(ctx, "blob read failed", "file_id", rec.ID, "error", err)
		return nil, common.ErrorNotFound
	}

	return &Content{Name: rec.Name, MimeType: mimeTypeOf(rec.Name), Data: data}, nil
}

// mimeTypeOf derives the content type from the extension of name.
func mimeTypeOf(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return DefaultMimeType
}
