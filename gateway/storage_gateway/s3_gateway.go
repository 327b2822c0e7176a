package storage_gateway

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"picset/domain"
	"picset/utils/constants"
	apperrors "picset/utils/errors"
	"picset/utils/logger"
)

// S3Gateway stores image bytes in an S3-compatible bucket. Object URIs
// carry the s3://<bucket>/ prefix.
type S3Gateway struct {
	client *minio.Client
	bucket string
}

// NewS3Client builds the S3-compatible client from configuration.
func NewS3Client(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return client, nil
}

// NewS3Gateway creates an object-store-backed image store.
func NewS3Gateway(client *minio.Client, bucket string) *S3Gateway {
	return &S3Gateway{client: client, bucket: bucket}
}

// Store uploads the bytes from the image's temp path to the derived object
// path. The temp file is left in place.
func (g *S3Gateway) Store(ctx context.Context, parent domain.RecordRef, image domain.StoredImage) (domain.StoredImage, error) {
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
	err := withRetry(ctx, "put object", func() error {
		_, err := g.client.FPutObject(ctx, g.bucket, objPath, image.SourceLocation, minio.PutObjectOptions{
			ContentType: image.ContentType,
		})
		return err
	})
	if err != nil {
		return image, fmt.Errorf("%w: put object %q: %w", domain.ErrStorageFailure, objPath, err)
	}

	stored := image
	stored.Committed = true
	stored.SourceLocation = fmt.Sprintf("s3://%s/%s", g.bucket, objPath)
	return stored, nil
}

// Delete removes the backend object. Nil images and already-missing objects
// are no-op successes.
func (g *S3Gateway) Delete(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) error {
	if image == nil || !image.Committed {
		return nil
	}
	objPath := trimScheme(image.SourceLocation)
	err := withRetry(ctx, "remove object", func() error {
		err := g.client.RemoveObject(ctx, g.bucket, objPath, minio.RemoveObjectOptions{})
		if err != nil && minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: remove object %q: %w", domain.ErrStorageFailure, objPath, err)
	}
	return nil
}

// Exists reports whether the backend object is present. Backend errors
// resolve to false, never an error.
func (g *S3Gateway) Exists(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) bool {
	if image == nil || !image.Committed {
		return false
	}
	_, err := g.client.StatObject(ctx, g.bucket, trimScheme(image.SourceLocation), minio.StatObjectOptions{})
	return err == nil
}

// DeleteAll removes every object under the upload prefix.
func (g *S3Gateway) DeleteAll(ctx context.Context) error {
	objects := g.client.ListObjects(ctx, g.bucket, minio.ListObjectsOptions{
		Prefix:    UploadPrefix + "/",
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("%w: list objects: %w", domain.ErrStorageFailure, object.Err)
		}
		if err := g.client.RemoveObject(ctx, g.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("%w: remove object %q: %w", domain.ErrStorageFailure, object.Key, err)
		}
	}
	logger.SafeInfoContext(ctx, "deleted all stored images", "bucket", g.bucket)
	return nil
}
