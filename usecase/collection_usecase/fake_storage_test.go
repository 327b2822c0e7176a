package collection_usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"picset/domain"
)

// fakeStorage is an in-memory ImageStorage with failure injection. Object
// URIs follow the s3 shape so tests can assert on rewritten locations.
type fakeStorage struct {
	objects   map[string]domain.StoredImage
	storeErr  error
	deleteErr error
	deleted   []string
	seq       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]domain.StoredImage)}
}

func (f *fakeStorage) Store(ctx context.Context, parent domain.RecordRef, image domain.StoredImage) (domain.StoredImage, error) {
	if f.storeErr != nil {
		return image, f.storeErr
	}
	f.seq++
	uri := fmt.Sprintf("s3://test-bucket/images/uploads/%s/%s/%s/%d-%s%s",
		strings.ToLower(parent.Type), parent.ID, image.Key, f.seq, image.Key, path.Ext(image.SourceLocation))
	stored := image
	stored.Committed = true
	stored.SourceLocation = uri
	f.objects[uri] = stored
	return stored, nil
}

func (f *fakeStorage) Delete(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) error {
	if image == nil || !image.Committed {
		return nil
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, image.SourceLocation)
	f.deleted = append(f.deleted, image.SourceLocation)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, parent domain.RecordRef, image *domain.StoredImage) bool {
	if image == nil || !image.Committed {
		return false
	}
	_, ok := f.objects[image.SourceLocation]
	return ok
}

func (f *fakeStorage) DeleteAll(ctx context.Context) error {
	f.objects = make(map[string]domain.StoredImage)
	return nil
}
