package domain

import "strconv"

// Images is the persisted shape of a collection column: an ordered slice of
// StoredImage shared by both the map and the list collection kinds. All
// mutating helpers return a new slice and leave the receiver untouched, so
// staged contents never alias committed contents.
type Images []StoredImage

// Clone returns a copy safe to mutate independently.
func (imgs Images) Clone() Images {
	if imgs == nil {
		return Images{}
	}
	out := make(Images, len(imgs))
	copy(out, imgs)
	return out
}

// Find returns a copy of the entry with the given key, or nil. Keys are
// compared as strings.
func (imgs Images) Find(key string) *StoredImage {
	for i := range imgs {
		if imgs[i].Key == key {
			img := imgs[i]
			return &img
		}
	}
	return nil
}

// Has reports whether an entry with the given key exists.
func (imgs Images) Has(key string) bool {
	return imgs.Find(key) != nil
}

// WithPut removes any existing entry with the same key and prepends the new
// image.
func (imgs Images) WithPut(image StoredImage) Images {
	out := make(Images, 0, len(imgs)+1)
	out = append(out, image)
	for i := range imgs {
		if imgs[i].Key != image.Key {
			out = append(out, imgs[i])
		}
	}
	return out
}

// WithoutKey removes the entry with the given key. The removed entry is
// returned so a deferred delete can target its backend object; nil when no
// entry matched.
func (imgs Images) WithoutKey(key string) (Images, *StoredImage) {
	var removed *StoredImage
	out := make(Images, 0, len(imgs))
	for i := range imgs {
		if imgs[i].Key == key && removed == nil {
			img := imgs[i]
			removed = &img
			continue
		}
		out = append(out, imgs[i])
	}
	return out, removed
}

// ReplaceKey swaps the entry with the given key for the provided image.
// Used to fold a committed upload back over its staged placeholder.
func (imgs Images) ReplaceKey(key string, image StoredImage) Images {
	out := imgs.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i] = image
			break
		}
	}
	return out
}

// ReplaceSource swaps the uncommitted entry whose SourceLocation matches.
// List inserts are matched by source rather than key because list keys are
// not stable until the post-commit reindex.
func (imgs Images) ReplaceSource(sourceLocation string, image StoredImage) Images {
	out := imgs.Clone()
	for i := range out {
		if !out[i].Committed && out[i].SourceLocation == sourceLocation {
			out[i] = image
			break
		}
	}
	return out
}

// At returns a copy of the element at the given position, or nil.
func (imgs Images) At(index int) *StoredImage {
	if index < 0 || index >= len(imgs) {
		return nil
	}
	img := imgs[index]
	return &img
}

// InsertAt inserts at the given position. A negative index appends at the
// end, as does any index past the current length.
func (imgs Images) InsertAt(index int, image StoredImage) Images {
	if index < 0 || index > len(imgs) {
		index = len(imgs)
	}
	out := make(Images, 0, len(imgs)+1)
	out = append(out, imgs[:index]...)
	out = append(out, image)
	out = append(out, imgs[index:]...)
	return out
}

// ReplaceAt overwrites the element at index. There is no implicit growth:
// a missing index is ErrIndexOutOfRange.
func (imgs Images) ReplaceAt(index int, image StoredImage) (Images, error) {
	if index < 0 || index >= len(imgs) {
		return imgs, ErrIndexOutOfRange
	}
	out := imgs.Clone()
	out[index] = image
	return out, nil
}

// RemoveAt removes the element at index, returning the removed entry. A
// missing index removes nothing and returns nil.
func (imgs Images) RemoveAt(index int) (Images, *StoredImage) {
	if index < 0 || index >= len(imgs) {
		return imgs, nil
	}
	img := imgs[index]
	out := make(Images, 0, len(imgs)-1)
	out = append(out, imgs[:index]...)
	out = append(out, imgs[index+1:]...)
	return out, &img
}

// Reindexed rewrites every element's key to its current positional index as
// a string, restoring the list invariant key == position.
func (imgs Images) Reindexed() Images {
	out := imgs.Clone()
	for i := range out {
		out[i].Key = strconv.Itoa(i)
	}
	return out
}
