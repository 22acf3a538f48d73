package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionForMimeType(t *testing.T) {
	ext, ok := ExtensionForMimeType("image/png")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	ext, ok = ExtensionForMimeType("image/svg+xml")
	assert.True(t, ok)
	assert.Equal(t, ".svg", ext)

	_, ok = ExtensionForMimeType("image/gif")
	assert.False(t, ok)

	_, ok = ExtensionForMimeType("application/pdf")
	assert.False(t, ok)
}

func TestAllowedMimeTypes(t *testing.T) {
	assert.ElementsMatch(t, []string{
		"image/bmp",
		"image/jpeg",
		"image/png",
		"image/svg+xml",
		"image/webp",
	}, AllowedMimeTypes())
}

func TestFakeImageStoreUpload(t *testing.T) {
	store := NewFakeImageStore()

	ref, err := store.Upload("want-1", []byte("first"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "images/want-1.jpeg", ref.FileName)
	assert.Equal(t, "image/jpeg", ref.MimeType)

	// Re-uploading under the same want replaces the object at the same key.
	ref, err = store.Upload("want-1", []byte("second"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "images/want-1.jpeg", ref.FileName)
	assert.Equal(t, []byte("second"), store.objects[ref.FileName])

	_, err = store.Upload("want-1", []byte("gifdata"), "image/gif")
	assert.Error(t, err)
}

func TestFakeImageStoreSignedUrl(t *testing.T) {
	store := NewFakeImageStore()
	ref, err := store.Upload("want-1", []byte("data"), "image/png")
	require.NoError(t, err)

	url, err := store.SignedUrl(ref)
	require.NoError(t, err)
	assert.Equal(t, "https://fake-bucket.example.com/images/want-1.png?signed=true", url)
}
