package storage_port

import (
	"context"

	"picset/domain"
)

// ImageStorage owns the physical byte lifecycle for a single image. Both
// backends derive the same object path, so URIs differ only in scheme.
type ImageStorage interface {
	// Store writes the bytes of an uncommitted image from its local temp
	// path and returns a copy with Committed=true and SourceLocation set to
	// the backend URI. It is only ever invoked for uncommitted images. The
	// temp file is left in place.
	Store(ctx context.Context, parent domain.RecordRef, image domain.StoredImage) (domain.StoredImage, error)

	// Delete removes the backend object. A nil image and an already-missing
	// object are both no-op successes.
	Delete(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) error

	// Exists never errors: backend failures and uncommitted images both
	// resolve to false.
	Exists(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) bool

	// DeleteAll removes every object under the upload prefix. Backends that
	// cannot or may not bulk-delete fail with ErrNotSupported or a fatal
	// configuration error.
	DeleteAll(ctx context.Context) error
}
