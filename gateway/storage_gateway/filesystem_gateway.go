package storage_gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"picset/domain"
	"picset/utils/constants"
	apperrors "picset/utils/errors"
	"picset/utils/logger"
)

// FilesystemGateway stores image bytes under a local root directory.
// Object URIs carry the local:// scheme.
type FilesystemGateway struct {
	root   string
	appEnv string
}

// NewFilesystemGateway creates a filesystem-backed image store. appEnv
// gates the destructive DeleteAll capability.
func NewFilesystemGateway(root, appEnv string) *FilesystemGateway {
	return &FilesystemGateway{root: root, appEnv: appEnv}
}

// Store copies the bytes from the image's temp path into the derived object
// path. The temp file is left in place.
func (g *FilesystemGateway) Store(ctx context.Context, parent domain.RecordRef, image domain.StoredImage) (domain.StoredImage, error) {
	if image.Committed {
		return image, apperrors.ValidationError("store called on committed image", map[string]interface{}{
			"key": image.Key, "source": image.SourceLocation,
		})
	}
	if image.Size > constants.MaxUploadBytes {
		return image, apperrors.ValidationError("upload exceeds size limit", map[string]interface{}{
			"key": image.Key, "size": image.Size, "limit": constants.MaxUploadBytes,
		})
	}

	objPath := objectPath(parent, image)
	dst := filepath.Join(g.root, filepath.FromSlash(objPath))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return image, fmt.Errorf("%w: create object directory: %w", domain.ErrStorageFailure, err)
	}
	if err := copyFile(image.SourceLocation, dst); err != nil {
		return image, fmt.Errorf("%w: write object: %w", domain.ErrStorageFailure, err)
	}

	stored := image
	stored.Committed = true
	stored.SourceLocation = "local://" + objPath
	return stored, nil
}

// Delete removes the backend object. Nil images and already-missing objects
// are no-op successes.
func (g *FilesystemGateway) Delete(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) error {
	if image == nil || !image.Committed {
		return nil
	}
	target := filepath.Join(g.root, filepath.FromSlash(trimScheme(image.SourceLocation)))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove object: %w", domain.ErrStorageFailure, err)
	}
	return nil
}

// Exists reports whether the backend object is present. Never errors.
func (g *FilesystemGateway) Exists(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) bool {
	if image == nil || !image.Committed {
		return false
	}
	target := filepath.Join(g.root, filepath.FromSlash(trimScheme(image.SourceLocation)))
	_, err := os.Stat(target)
	return err == nil
}

// DeleteAll wipes everything under the upload prefix. Restricted to
// non-production environments; elsewhere this is a fatal configuration
// error, not a silent no-op.
func (g *FilesystemGateway) DeleteAll(ctx context.Context) error {
	if g.appEnv == "production" {
		return apperrors.ConfigError("bulk image delete is disabled in production", map[string]interface{}{
			"app_env": g.appEnv,
		})
	}
	target := filepath.Join(g.root, filepath.FromSlash(UploadPrefix))
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("%w: remove upload tree: %w", domain.ErrStorageFailure, err)
	}
	logger.SafeInfoContext(ctx, "deleted all stored images", "root", g.root)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
