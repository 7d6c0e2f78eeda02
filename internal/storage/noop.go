package storage

import (
	"context"
	"io"
	"time"
)

// noopStorage discards uploads and produces no URLs. Used when the S3 photo
// store is disabled in configuration.
type noopStorage struct{}

// NewNoopStorage returns a PhotoStorage that silently ignores all operations.
func NewNoopStorage() PhotoStorage {
	return noopStorage{}
}

func (noopStorage) UploadObject(ctx context.Context, objectKey string, contentType string, body io.Reader) error {
	return nil
}

func (noopStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "", nil
}

func (noopStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return nil
}
