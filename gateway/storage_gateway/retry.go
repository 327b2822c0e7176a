package storage_gateway

import (
	"context"
	"time"

	"picset/utils/constants"
	"picset/utils/logger"
)

// withRetry runs a backend operation with exponential backoff. Remote object
// stores throw transient errors under load; a few short retries ride them
// out. The context cancels the wait between attempts.
func withRetry(ctx context.Context, operation string, fn func() error) error {
	backoff := constants.StorageInitialDelay

	var err error
	for attempt := 0; attempt < constants.StorageMaxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if attempt == constants.StorageMaxRetries-1 {
			break
		}

		logger.SafeWarn("storage operation failed, retrying",
			"operation", operation, "attempt", attempt, "backoff", backoff, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > constants.StorageMaxDelay {
			backoff = constants.StorageMaxDelay
		}
	}

	logger.SafeError("storage operation failed after retries",
		"operation", operation, "maxRetries", constants.StorageMaxRetries, "error", err)
	return err
}
