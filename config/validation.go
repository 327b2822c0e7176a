package config

import (
	"encoding/hex"
	"fmt"
)

// Recognized storage backends.
const (
	BackendS3         = "s3"
	BackendFilesystem = "filesystem"
)

// Validate checks the loaded configuration for fatal problems. Validation
// failures are configuration errors and should abort startup.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("STORAGE_S3_BUCKET is required for the s3 backend")
		}
	case BackendFilesystem:
		if c.Storage.FilesystemRoot == "" {
			return fmt.Errorf("STORAGE_FS_ROOT is required for the filesystem backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendS3, BackendFilesystem)
	}

	if c.Proxy.Host == "" {
		return fmt.Errorf("IMAGE_PROXY_HOST is required")
	}
	if err := validateHexSecret("IMAGE_PROXY_KEY", c.Proxy.SigningKey); err != nil {
		return err
	}
	if err := validateHexSecret("IMAGE_PROXY_SALT", c.Proxy.SigningSalt); err != nil {
		return err
	}

	return nil
}

func validateHexSecret(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return fmt.Errorf("%s must be hex-encoded: %w", name, err)
	}
	return nil
}
