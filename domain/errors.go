package domain

import "errors"

// Sentinel errors checked across layers with errors.Is.
var (
	ErrUnknownSize        = errors.New("unknown image size name")
	ErrUnsupportedGravity = errors.New("unsupported gravity")
	ErrStaleVersion       = errors.New("stale record version")
	ErrIndexOutOfRange    = errors.New("image index out of range")
	ErrNotSupported       = errors.New("operation not supported by storage backend")
	ErrStorageFailure     = errors.New("storage operation failed")
	ErrRecordNotFound     = errors.New("record not found")
)

// IsStaleVersion checks if an error is an optimistic-lock violation. Callers
// seeing this may retry with freshly fetched state.
func IsStaleVersion(err error) bool {
	return errors.Is(err, ErrStaleVersion)
}

// IsStorageFailure checks if an error came from backend byte I/O during the
// deferred-commit phase.
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

// IsNotSupported checks if an error marks a missing backend capability.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
