package domain

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func img(key, source string) StoredImage {
	return StoredImage{
		Key:            key,
		SourceLocation: source,
		ContentType:    "image/jpeg",
		Gravity:        GravitySmart,
	}
}

func TestImagesWithPut_ReplacesSameKeyAndPrepends(t *testing.T) {
	imgs := Images{img("avatar", "a.jpg"), img("banner", "b.jpg")}

	out := imgs.WithPut(img("avatar", "a2.jpg"))

	require.Len(t, out, 2)
	require.Equal(t, "avatar", out[0].Key)
	require.Equal(t, "a2.jpg", out[0].SourceLocation)
	require.Equal(t, "banner", out[1].Key)

	// receiver untouched
	require.Equal(t, "a.jpg", imgs[0].SourceLocation)
}

func TestImagesWithoutKey(t *testing.T) {
	imgs := Images{img("avatar", "a.jpg"), img("banner", "b.jpg")}

	out, removed := imgs.WithoutKey("avatar")
	require.Len(t, out, 1)
	require.NotNil(t, removed)
	require.Equal(t, "a.jpg", removed.SourceLocation)

	out, removed = imgs.WithoutKey("missing")
	require.Len(t, out, 2)
	require.Nil(t, removed)
}

func TestImagesFindAndHas(t *testing.T) {
	imgs := Images{img("avatar", "a.jpg")}

	found := imgs.Find("avatar")
	require.NotNil(t, found)
	require.Equal(t, "a.jpg", found.SourceLocation)

	require.True(t, imgs.Has("avatar"))
	require.False(t, imgs.Has("banner"))
	require.Nil(t, imgs.Find("banner"))

	// Find returns a copy, not an aliased element.
	found.SourceLocation = "mutated"
	require.Equal(t, "a.jpg", imgs[0].SourceLocation)
}

func TestImagesInsertAt(t *testing.T) {
	imgs := Images{img("0", "a.jpg"), img("1", "b.jpg")}

	out := imgs.InsertAt(1, img("x", "c.jpg"))
	require.Equal(t, []string{"a.jpg", "c.jpg", "b.jpg"}, sources(out))

	appended := imgs.InsertAt(-1, img("x", "c.jpg"))
	require.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, sources(appended))

	past := imgs.InsertAt(99, img("x", "c.jpg"))
	require.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, sources(past))
}

func TestImagesReplaceAt_OutOfRange(t *testing.T) {
	imgs := Images{img("0", "a.jpg")}

	_, err := imgs.ReplaceAt(1, img("1", "b.jpg"))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = imgs.ReplaceAt(-1, img("1", "b.jpg"))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	out, err := imgs.ReplaceAt(0, img("0", "b.jpg"))
	require.NoError(t, err)
	require.Equal(t, "b.jpg", out[0].SourceLocation)
}

func TestImagesRemoveAt(t *testing.T) {
	imgs := Images{img("0", "a.jpg"), img("1", "b.jpg")}

	out, removed := imgs.RemoveAt(0)
	require.Len(t, out, 1)
	require.NotNil(t, removed)
	require.Equal(t, "a.jpg", removed.SourceLocation)

	out, removed = imgs.RemoveAt(5)
	require.Len(t, out, 2)
	require.Nil(t, removed)
}

func TestImagesReindexed_InvariantHoldsAfterAnySequence(t *testing.T) {
	imgs := Images{}
	imgs = imgs.InsertAt(-1, img("x", "a.jpg"))
	imgs = imgs.InsertAt(0, img("y", "b.jpg"))
	imgs = imgs.InsertAt(1, img("z", "c.jpg"))
	imgs, _ = imgs.RemoveAt(1)
	imgs = imgs.Reindexed()

	for i := range imgs {
		require.Equal(t, strconv.Itoa(i), imgs[i].Key)
	}
}

func TestImagesReplaceSource_MatchesUncommittedOnly(t *testing.T) {
	committed := img("0", "/tmp/upload-1")
	committed.Committed = true
	pending := img("1", "/tmp/upload-1")

	imgs := Images{committed, pending}
	stored := img("1", "s3://bucket/path")
	stored.Committed = true

	out := imgs.ReplaceSource("/tmp/upload-1", stored)
	require.True(t, out[0].Committed)
	require.Equal(t, "/tmp/upload-1", out[0].SourceLocation)
	require.Equal(t, "s3://bucket/path", out[1].SourceLocation)
}

func sources(imgs Images) []string {
	out := make([]string, len(imgs))
	for i := range imgs {
		out[i] = imgs[i].SourceLocation
	}
	return out
}
