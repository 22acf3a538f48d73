package imagestore

import (
	"bytes"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/model"
)

const (
	TestS3Bucket      = "wants-dev-assets"
	ProdS3ImageBucket = "wants-assets"

	signedUrlExpiry = time.Hour
)

type S3ImageStore struct {
	bucket   string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3ImageStore(bucket string) (*S3ImageStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &S3ImageStore{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(session.Must(sess, err)),
	}, nil
}

// Upload stores the image under a key derived from the want id so a
// re-upload for the same want overwrites the previous object.
func (s *S3ImageStore) Upload(wantId string, data []byte, mimeType string) (*model.WantImageRef, error) {
	ext, ok := ExtensionForMimeType(mimeType)
	if !ok {
		return nil, errors.Errorf("unsupported image mime type %s", mimeType)
	}

	fileName := "images/" + wantId + ext

	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, errors.Wrap(err, "upload want image")
	}

	return &model.WantImageRef{
		Bucket:   s.bucket,
		FileName: fileName,
		MimeType: mimeType,
	}, nil
}

func (s *S3ImageStore) SignedUrl(ref *model.WantImageRef) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.FileName),
	})
	url, err := req.Presign(signedUrlExpiry)
	if err != nil {
		return "", errors.Wrap(err, "presign want image url")
	}
	return url, nil
}
