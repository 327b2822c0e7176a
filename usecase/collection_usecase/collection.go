// Package collection_usecase owns the staged mutation model for image
// collections: staging, deferred commit to storage, reindexing, optimistic
// locking, and display-URL production.
package collection_usecase

import (
	"context"
	"fmt"

	"picset/domain"
	"picset/port/record_port"
	"picset/port/storage_port"
	"picset/utils/imgproxy"

	apperrors "picset/utils/errors"
)

// collection carries the wiring shared by both manager variants.
type collection struct {
	engine  record_port.RecordEngine
	storage storage_port.ImageStorage
	signer  *imgproxy.Signer
	field   string
	schema  *domain.Schema
}

func newCollection(schema *domain.Schema, field string, kind domain.CollectionKind, engine record_port.RecordEngine, storage storage_port.ImageStorage, signer *imgproxy.Signer) (collection, error) {
	declared, ok := schema.Kind(field)
	if !ok {
		return collection{}, fmt.Errorf("collection %q is not declared on record type %q", field, schema.RecordType())
	}
	if declared != kind {
		return collection{}, fmt.Errorf("collection %q on record type %q has a different kind", field, schema.RecordType())
	}
	return collection{
		engine:  engine,
		storage: storage,
		signer:  signer,
		field:   field,
		schema:  schema,
	}, nil
}

// Begin opens a staging chain against the parent's current contents and
// version.
func (c *collection) Begin(parent *domain.ParentRecord) *StagedChange {
	return newStagedChange(parent, c.field)
}

// Submit hands the staged change to the persistence engine: the column
// write happens first under the version check, the commit actions run only
// if it succeeds. Returns the record's new version. A storage failure
// during the commit phase surfaces here while the column write stands.
func (c *collection) Submit(ctx context.Context, staged *StagedChange) (int64, error) {
	if staged == nil || staged.state != StateStaged {
		return 0, apperrors.ValidationError("nothing staged to submit", map[string]interface{}{
			"field": c.field,
		})
	}

	staged.state = StateCommitting
	version, err := c.engine.Apply(ctx, staged.write())
	if err != nil {
		staged.state = StateFailed
		return version, err
	}
	staged.state = StateCommitted
	return version, nil
}

// display resolves dimensions and produces the signed proxy URL for one
// image.
func (c *collection) display(image *domain.StoredImage, aspect domain.Aspect, size domain.Size, isDefault bool) (*domain.DisplayImage, error) {
	width, height, err := aspect.Apply(size)
	if err != nil {
		return nil, err
	}
	url, err := c.signer.Sign(image.SourceLocation, image.Key, width, height, image.Gravity)
	if err != nil {
		return nil, err
	}
	return &domain.DisplayImage{
		URL:         url,
		Width:       width,
		Height:      height,
		ContentType: image.ContentType,
		Gravity:     image.Gravity,
		Aspect:      aspect,
		IsDefault:   isDefault,
		Source:      image,
	}, nil
}

// storageError wraps a backend failure so it stays attributed to this
// collection field when surfaced through the persistence error channel.
func (c *collection) storageError(message string, cause error, key string) *apperrors.AppError {
	return apperrors.StorageError(message, fmt.Errorf("%w: %w", domain.ErrStorageFailure, cause), map[string]interface{}{
		"field": c.field,
		"key":   key,
	})
}
