package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobs"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileFixture struct {
	svc   *FileService
	users *users.InMemoryRepository
	files *files.InMemoryRepository
	owner string
	other string
}

func newFileFixture(t *testing.T, store blobs.Store) *fileFixture {
	t.Helper()
	ctx := context.Background()

	if store == nil {
		store = blobs.NewLocalStore(t.TempDir())
	}

	u := users.NewInMemoryRepository()
	f := files.NewInMemoryRepository()

	owner, err := u.Create(ctx, &models.User{Email: "a@x.com", PasswordDigest: []byte("d")})
	require.NoError(t, err)
	other, err := u.Create(ctx, &models.User{Email: "b@x.com", PasswordDigest: []byte("d")})
	require.NoError(t, err)

	return &fileFixture{
		svc:   NewFileService(u, f, store, logging.Discard()),
		users: u,
		files: f,
		owner: owner.ID,
		other: other.ID,
	}
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestFileService_UploadValidationOrder(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  UploadRequest
		want error
	}{
		{"missing name wins over everything", UploadRequest{Type: "bogus"}, common.ErrMissingName},
		{"missing type", UploadRequest{Name: "a"}, common.ErrMissingType},
		{"unknown type", UploadRequest{Name: "a", Type: "video"}, common.ErrMissingType},
		{"missing data for file", UploadRequest{Name: "a", Type: "file"}, common.ErrMissingData},
		{"missing data for image", UploadRequest{Name: "a", Type: "image", Parent: models.InFolder("nope")}, common.ErrMissingData},
		{"parent not found", UploadRequest{Name: "a", Type: "folder", Parent: models.InFolder("nope")}, common.ErrParentNotFound},
		{"invalid base64", UploadRequest{Name: "a", Type: "file", Data: "***"}, common.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.Upload(ctx, fx.owner, tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}

	n, err := fx.files.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFileService_UploadParentNotFolder(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	file, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "a.txt", Type: "file", Data: b64("x")})
	require.NoError(t, err)

	_, err = fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "b", Type: "folder", Parent: models.InFolder(file.ID)})
	require.ErrorIs(t, err, common.ErrParentNotFolder)
}

func TestFileService_UploadUnknownUser(t *testing.T) {
	fx := newFileFixture(t, nil)

	_, err := fx.svc.Upload(context.Background(), "ghost", UploadRequest{Name: "a", Type: "folder"})
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestFileService_UploadFolderHasNoBlob(t *testing.T) {
	fx := newFileFixture(t, nil)

	rec, err := fx.svc.Upload(context.Background(), fx.owner, UploadRequest{Name: "docs", Type: "folder", Data: b64("ignored")})
	require.NoError(t, err)
	assert.Empty(t, rec.LocalPath)
	assert.True(t, rec.Parent.IsRoot())
	assert.Equal(t, fx.owner, rec.UserID)
}

type failingBlobs struct{}

func (failingBlobs) Write(ctx context.Context, data []byte) (string, error) {
	return "", fmt.Errorf("%w: %w", common.ErrStorageWriteFailed, errors.New("disk full"))
}

func (failingBlobs) Read(ctx context.Context, path string) ([]byte, error) {
	return nil, common.ErrorNotFound
}

func TestFileService_UploadStorageFailure(t *testing.T) {
	fx := newFileFixture(t, failingBlobs{})
	ctx := context.Background()

	_, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "a.txt", Type: "file", Data: b64("x")})
	require.ErrorIs(t, err, common.ErrStorageWriteFailed)

	n, err := fx.files.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFileService_ShowHidesForeignRecords(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	rec, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "docs", Type: "folder"})
	require.NoError(t, err)

	got, err := fx.svc.Show(ctx, fx.owner, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "docs", got.Name)

	_, errForeign := fx.svc.Show(ctx, fx.other, rec.ID)
	_, errMissing := fx.svc.Show(ctx, fx.other, "missing")
	require.ErrorIs(t, errForeign, common.ErrorNotFound)
	require.ErrorIs(t, errMissing, common.ErrorNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
}

func TestFileService_List(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	folder, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "docs", Type: "folder"})
	require.NoError(t, err)
	_, err = fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "a.txt", Type: "file", Parent: models.InFolder(folder.ID), Data: b64("a")})
	require.NoError(t, err)
	_, err = fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "b.txt", Type: "file", Parent: models.InFolder(folder.ID), Data: b64("b")})
	require.NoError(t, err)
	_, err = fx.svc.Upload(ctx, fx.other, UploadRequest{Name: "theirs", Type: "folder"})
	require.NoError(t, err)

	root, err := fx.svc.List(ctx, fx.owner, models.Root())
	require.NoError(t, err)
	assert.Len(t, slices.Collect(root), 1)

	inside, err := fx.svc.List(ctx, fx.owner, models.InFolder(folder.ID))
	require.NoError(t, err)

	var names []string
	for rec := range inside {
		names = append(names, rec.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)

	// restartable
	assert.Len(t, slices.Collect(inside), 2)

	foreign, err := fx.svc.List(ctx, fx.other, models.InFolder(folder.ID))
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(foreign))
}

func TestFileService_SetPublish(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	rec, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "a.txt", Type: "file", Data: b64("hi")})
	require.NoError(t, err)

	_, err = fx.svc.SetPublish(ctx, fx.other, rec.ID, true)
	require.ErrorIs(t, err, common.ErrorNotFound)

	got, err := fx.svc.SetPublish(ctx, fx.owner, rec.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	stored, err := fx.files.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublic)

	got, err = fx.svc.SetPublish(ctx, fx.owner, rec.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	_, err = fx.svc.SetPublish(ctx, fx.owner, "missing", true)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileService_DownloadVisibility(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	rec, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "n.txt", Type: "file", Data: b64("hi")})
	require.NoError(t, err)

	content, err := fx.svc.Download(ctx, fx.owner, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), content.Data)
	assert.Equal(t, "text/plain; charset=utf-8", content.MimeType)

	_, err = fx.svc.Download(ctx, "", rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = fx.svc.Download(ctx, fx.other, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = fx.svc.SetPublish(ctx, fx.owner, rec.ID, true)
	require.NoError(t, err)

	content, err = fx.svc.Download(ctx, "", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), content.Data)

	content, err = fx.svc.Download(ctx, fx.other, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), content.Data)
}

func TestFileService_DownloadFolder(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	folder, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{Name: "docs", Type: "folder"})
	require.NoError(t, err)

	_, err = fx.svc.Download(ctx, fx.owner, folder.ID)
	require.ErrorIs(t, err, common.ErrNotAFile)

	// a private folder stays hidden from others
	_, err = fx.svc.Download(ctx, fx.other, folder.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileService_DownloadMissingBlob(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	rec, err := fx.files.Create(ctx, &models.FileRecord{
		UserID: fx.owner, Name: "gone.bin", Type: models.FileTypeFile, LocalPath: "/nonexistent/blob",
	})
	require.NoError(t, err)

	_, err = fx.svc.Download(ctx, fx.owner, rec.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMimeTypeOf(t *testing.T) {
	assert.Equal(t, "image/png", mimeTypeOf("pic.png"))
	assert.Equal(t, DefaultMimeType, mimeTypeOf("noext"))
	assert.Equal(t, DefaultMimeType, mimeTypeOf("archive.unknownext"))
}

func TestFileService_DownloadWithoutExtensionIsBinary(t *testing.T) {
	fx := newFileFixture(t, nil)
	ctx := context.Background()

	rec, err := fx.svc.Upload(ctx, fx.owner, UploadRequest{
		Name: "notes",
		Type: "file",
		Data: b64("plain text body"),
	})
	require.NoError(t, err)

	content, err := fx.svc.Download(ctx, fx.owner, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultMimeType, content.MimeType)
}
