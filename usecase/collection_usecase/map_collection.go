package collection_usecase

import (
	"context"

	"picset/domain"
	"picset/port/record_port"
	"picset/port/storage_port"
	"picset/utils/imgproxy"
)

// MapDefaultProducer synthesizes a stand-in image when no entry exists at a
// key. Returning nil means "no default"; that is a normal outcome.
type MapDefaultProducer func(parent *domain.ParentRecord, key string, aspect domain.Aspect, size domain.Size) *domain.StoredImage

// MapCollection manages an unordered, name-addressed image collection.
type MapCollection struct {
	collection
	defaults MapDefaultProducer
}

// NewMapCollection builds the manager for one declared map collection.
// defaults may be nil, which is equivalent to a producer that always
// returns nil.
func NewMapCollection(schema *domain.Schema, field string, engine record_port.RecordEngine, storage storage_port.ImageStorage, signer *imgproxy.Signer, defaults MapDefaultProducer) (*MapCollection, error) {
	base, err := newCollection(schema, field, domain.KindMap, engine, storage, signer)
	if err != nil {
		return nil, err
	}
	return &MapCollection{collection: base, defaults: defaults}, nil
}

// Put stages an upsert: any existing entry with the same key is dropped
// from the proposed contents and the new image is prepended. The commit
// action uploads the bytes and swaps the placeholder for the committed
// result, matched by key.
func (m *MapCollection) Put(staged *StagedChange, image domain.StoredImage) *StagedChange {
	parent := staged.parent
	next := staged.Images().WithPut(image)

	staged.stage(next, func(ctx context.Context, images domain.Images) (domain.Images, error) {
		stored, err := m.storage.Store(ctx, parent, image)
		if err != nil {
			return images, m.storageError("image upload failed", err, image.Key)
		}
		return images.ReplaceKey(image.Key, stored), nil
	})
	return staged
}

// Delete stages a removal. The entry leaves the proposed contents
// immediately; the commit action deletes the backend bytes. A backend
// failure surfaces without re-adding the entry: the column write already
// committed without it.
func (m *MapCollection) Delete(staged *StagedChange, key string) *StagedChange {
	parent := staged.parent
	next, removed := staged.Images().WithoutKey(key)

	staged.stage(next, func(ctx context.Context, images domain.Images) (domain.Images, error) {
		if err := m.storage.Delete(ctx, parent, removed); err != nil {
			return images, m.storageError("image delete failed", err, key)
		}
		return images, nil
	})
	return staged
}

// Find returns the committed entry with the given key, or nil.
func (m *MapCollection) Find(parent *domain.ParentRecord, key string) *domain.StoredImage {
	return parent.Collection(m.field).Find(key)
}

// Has reports whether an entry exists at the given key.
func (m *MapCollection) Has(parent *domain.ParentRecord, key string) bool {
	return m.Find(parent, key) != nil
}

// DisplayOne produces the displayable image at a key. A missing entry falls
// back to the default producer; nil with no error means "no image", which
// is never exceptional.
func (m *MapCollection) DisplayOne(parent *domain.ParentRecord, key string, aspect domain.Aspect, size domain.Size) (*domain.DisplayImage, error) {
	image := m.Find(parent, key)
	isDefault := false
	if image == nil {
		if m.defaults == nil {
			return nil, nil
		}
		image = m.defaults(parent, key, aspect, size)
		if image == nil {
			return nil, nil
		}
		image.IsDefault = true
		isDefault = true
	}
	return m.display(image, aspect, size, isDefault)
}

// DisplayAll maps every entry through the signer. No default substitution:
// defaults are a per-key concern.
func (m *MapCollection) DisplayAll(parent *domain.ParentRecord, aspect domain.Aspect, size domain.Size) ([]domain.DisplayImage, error) {
	contents := parent.Collection(m.field)
	out := make([]domain.DisplayImage, 0, len(contents))
	for i := range contents {
		image := contents[i]
		display, err := m.display(&image, aspect, size, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *display)
	}
	return out, nil
}
