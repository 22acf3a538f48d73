package imagestore

import "github.com/wantsapp/wants-backend/model"

// Allowed image mime types, mapped to the stored file extension.
// See https://developer.mozilla.org/en-US/docs/Web/HTTP/Basics_of_HTTP/MIME_types/Common_types
var allowedMimeTypes = map[string]string{
	"image/bmp":     ".bmp",
	"image/jpeg":    ".jpeg",
	"image/png":     ".png",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

// ExtensionForMimeType returns the storage file extension for an image mime
// type, and false when the type is not an allowed upload.
func ExtensionForMimeType(mimeType string) (string, bool) {
	ext, ok := allowedMimeTypes[mimeType]
	return ext, ok
}

// AllowedMimeTypes lists the accepted upload mime types, for error messages.
func AllowedMimeTypes() []string {
	types := make([]string, 0, len(allowedMimeTypes))
	for mimeType := range allowedMimeTypes {
		types = append(types, mimeType)
	}
	return types
}

// Store holds want images. Each want owns at most one image; uploading again
// under the same want id replaces the previous binary.
type Store interface {
	Upload(wantId string, data []byte, mimeType string) (*model.WantImageRef, error)

	// SignedUrl issues a short-lived read URL for a stored image.
	SignedUrl(ref *model.WantImageRef) (string, error)
}
