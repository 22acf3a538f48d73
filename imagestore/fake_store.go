package imagestore

import (
	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/model"
)

// FakeImageStore keeps uploads in memory and issues deterministic URLs.
type FakeImageStore struct {
	objects map[string][]byte
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{objects: map[string][]byte{}}
}

func (s *FakeImageStore) Upload(wantId string, data []byte, mimeType string) (*model.WantImageRef, error) {
	ext, ok := ExtensionForMimeType(mimeType)
	if !ok {
		return nil, errors.Errorf("unsupported image mime type %s", mimeType)
	}
	fileName := "images/" + wantId + ext
	s.objects[fileName] = data
	return &model.WantImageRef{
		Bucket:   "fake-bucket",
		FileName: fileName,
		MimeType: mimeType,
	}, nil
}

func (s *FakeImageStore) SignedUrl(ref *model.WantImageRef) (string, error) {
	return "https://" + ref.Bucket + ".example.com/" + ref.FileName + "?signed=true", nil
}
