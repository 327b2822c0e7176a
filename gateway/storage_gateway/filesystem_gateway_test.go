package storage_gateway

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"picset/domain"
	apperrors "picset/utils/errors"
)

func uploadFixture(t *testing.T, key string) domain.StoredImage {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "upload-"+key+".jpg")
	require.NoError(t, os.WriteFile(tmp, []byte("image bytes"), 0o644))
	return domain.UploadSource{
		TempPath:    tmp,
		ContentType: "image/jpeg",
		Filename:    key + ".jpg",
		Size:        11,
	}.ToStoredImage(key)
}

func TestFilesystemGateway_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewFilesystemGateway(t.TempDir(), "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}
	image := uploadFixture(t, "avatar")

	stored, err := g.Store(ctx, parent, image)
	require.NoError(t, err)
	require.True(t, stored.Committed)
	require.True(t, strings.HasPrefix(stored.SourceLocation, "local://images/uploads/accounts.user/7/avatar/"), stored.SourceLocation)

	// the temp file survives the store
	_, err = os.Stat(image.SourceLocation)
	require.NoError(t, err)

	require.True(t, g.Exists(ctx, parent, &stored))
}

func TestFilesystemGateway_StoreRejectsCommittedImage(t *testing.T) {
	g := NewFilesystemGateway(t.TempDir(), "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}
	image := uploadFixture(t, "avatar")
	image.Committed = true

	_, err := g.Store(context.Background(), parent, image)
	require.Error(t, err)
}

func TestFilesystemGateway_StoreRejectsOversizeUpload(t *testing.T) {
	g := NewFilesystemGateway(t.TempDir(), "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}
	image := uploadFixture(t, "huge")
	image.Size = 21 * 1024 * 1024

	_, err := g.Store(context.Background(), parent, image)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestFilesystemGateway_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	g := NewFilesystemGateway(t.TempDir(), "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}

	// nil image is a no-op success
	require.NoError(t, g.Delete(ctx, parent, nil))

	stored, err := g.Store(ctx, parent, uploadFixture(t, "avatar"))
	require.NoError(t, err)

	require.NoError(t, g.Delete(ctx, parent, &stored))
	require.False(t, g.Exists(ctx, parent, &stored))

	// deleting the already-deleted object is still a success
	require.NoError(t, g.Delete(ctx, parent, &stored))
}

func TestFilesystemGateway_ExistsNeverErrors(t *testing.T) {
	ctx := context.Background()
	g := NewFilesystemGateway(t.TempDir(), "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}

	require.False(t, g.Exists(ctx, parent, nil))

	uncommitted := uploadFixture(t, "avatar")
	require.False(t, g.Exists(ctx, parent, &uncommitted))

	missing := domain.StoredImage{Key: "gone", SourceLocation: "local://images/uploads/x/y/gone/z.jpg", Committed: true}
	require.False(t, g.Exists(ctx, parent, &missing))
}

func TestFilesystemGateway_DeleteAll(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	g := NewFilesystemGateway(root, "test")
	parent := domain.RecordRef{Type: "accounts.user", ID: "7"}

	stored, err := g.Store(ctx, parent, uploadFixture(t, "avatar"))
	require.NoError(t, err)

	require.NoError(t, g.DeleteAll(ctx))
	require.False(t, g.Exists(ctx, parent, &stored))
}

func TestFilesystemGateway_DeleteAllRefusedInProduction(t *testing.T) {
	g := NewFilesystemGateway(t.TempDir(), "production")

	err := g.DeleteAll(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.ErrCodeConfig, appErr.Code)
}
