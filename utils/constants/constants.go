// Package constants centralizes magic numbers shared across the picset
// codebase.
package constants

import "time"

// Upload limits.
const (
	// MaxUploadBytes is the maximum accepted size for a single uploaded
	// image. Larger uploads are rejected before any backend I/O.
	MaxUploadBytes = 20 * 1024 * 1024
)

// Retry configuration for object storage operations. Remote backends see
// transient failures; a short exponential backoff rides them out without
// holding the commit phase open for long.
const (
	// StorageMaxRetries is the maximum number of attempts for one backend
	// operation, the initial attempt included.
	StorageMaxRetries = 3

	// StorageInitialDelay is the delay before the first retry.
	StorageInitialDelay = 500 * time.Millisecond

	// StorageMaxDelay caps the exponential backoff.
	StorageMaxDelay = 5 * time.Second
)
