package collection_usecase

import (
	"context"
	"strconv"

	"picset/domain"
	"picset/port/record_port"
	"picset/port/storage_port"
	"picset/utils/imgproxy"
)

// ListDefaultProducer synthesizes a stand-in image when no entry exists at
// an index. Returning nil means "no default".
type ListDefaultProducer func(parent *domain.ParentRecord, index int, aspect domain.Aspect, size domain.Size) *domain.StoredImage

// ListCollection manages an ordered, index-addressed image collection.
// Every element's key equals its stringified position; the invariant is
// restored by a reindex in every structural commit action.
type ListCollection struct {
	collection
	defaults ListDefaultProducer
}

// NewListCollection builds the manager for one declared list collection.
func NewListCollection(schema *domain.Schema, field string, engine record_port.RecordEngine, storage storage_port.ImageStorage, signer *imgproxy.Signer, defaults ListDefaultProducer) (*ListCollection, error) {
	base, err := newCollection(schema, field, domain.KindList, engine, storage, signer)
	if err != nil {
		return nil, err
	}
	return &ListCollection{collection: base, defaults: defaults}, nil
}

// InsertAt stages an insert at the given position; a negative index appends
// at the end. Keys of the other elements are not touched until the
// post-commit reindex. The commit action matches the placeholder by its
// source location because list keys are not stable until then.
func (l *ListCollection) InsertAt(staged *StagedChange, index int, image domain.StoredImage) *StagedChange {
	current := staged.Images()
	if index < 0 || index > len(current) {
		index = len(current)
	}
	image.Key = strconv.Itoa(index)
	next := current.InsertAt(index, image)

	staged.stage(next, l.storeAndReindex(staged.parent, image))
	return staged
}

// ReplaceAt stages an overwrite of the element at index. There is no
// implicit growth: a missing index is ErrIndexOutOfRange. The commit action
// is identical to insert's, reindex included, for uniformity.
func (l *ListCollection) ReplaceAt(staged *StagedChange, index int, image domain.StoredImage) (*StagedChange, error) {
	image.Key = strconv.Itoa(index)
	next, err := staged.Images().ReplaceAt(index, image)
	if err != nil {
		return staged, err
	}

	staged.stage(next, l.storeAndReindex(staged.parent, image))
	return staged, nil
}

// DeleteAt stages a removal. The element leaves the proposed sequence
// immediately; the commit action deletes the backend bytes and reindexes
// the survivors.
func (l *ListCollection) DeleteAt(staged *StagedChange, index int) *StagedChange {
	parent := staged.parent
	next, removed := staged.Images().RemoveAt(index)

	staged.stage(next, func(ctx context.Context, images domain.Images) (domain.Images, error) {
		if err := l.storage.Delete(ctx, parent, removed); err != nil {
			return images, l.storageError("image delete failed", err, strconv.Itoa(index))
		}
		return images.Reindexed(), nil
	})
	return staged
}

// At returns the committed element at the given position, or nil.
func (l *ListCollection) At(parent *domain.ParentRecord, index int) *domain.StoredImage {
	return parent.Collection(l.field).At(index)
}

// DisplayOne produces the displayable image at an index, falling back to
// the default producer. nil with no error means "no image".
func (l *ListCollection) DisplayOne(parent *domain.ParentRecord, index int, aspect domain.Aspect, size domain.Size) (*domain.DisplayImage, error) {
	image := l.At(parent, index)
	isDefault := false
	if image == nil {
		if l.defaults == nil {
			return nil, nil
		}
		image = l.defaults(parent, index, aspect, size)
		if image == nil {
			return nil, nil
		}
		image.IsDefault = true
		isDefault = true
	}
	return l.display(image, aspect, size, isDefault)
}

// DisplayAll maps every element through the signer, in order.
func (l *ListCollection) DisplayAll(parent *domain.ParentRecord, aspect domain.Aspect, size domain.Size) ([]domain.DisplayImage, error) {
	contents := parent.Collection(l.field)
	out := make([]domain.DisplayImage, 0, len(contents))
	for i := range contents {
		image := contents[i]
		display, err := l.display(&image, aspect, size, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *display)
	}
	return out, nil
}

// storeAndReindex uploads the new element's bytes, swaps the placeholder
// for the committed result, and rewrites every key to its position.
func (l *ListCollection) storeAndReindex(parent domain.RecordRef, image domain.StoredImage) record_port.CommitAction {
	return func(ctx context.Context, images domain.Images) (domain.Images, error) {
		stored, err := l.storage.Store(ctx, parent, image)
		if err != nil {
			return images, l.storageError("image upload failed", err, image.Key)
		}
		return images.ReplaceSource(image.SourceLocation, stored).Reindexed(), nil
	}
}
