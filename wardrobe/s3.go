package wardrobe

import (
	"context"
	"io"

	"github.com/raushankrgupta/wardrobe-ai-backend/utils"
)

// S3BlobStore implements BlobStore on the shared S3 client. Download URLs
// are presigned GETs, regenerated per request.
type S3BlobStore struct{}

func NewS3BlobStore() *S3BlobStore {
	return &S3BlobStore{}
}

func (s *S3BlobStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	_, err := utils.UploadFileToS3(ctx, r, key, contentType)
	return err
}

func (s *S3BlobStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return utils.GetPresignedURL(ctx, key)
}
