package services

import (
	"context"
	"errors"
	"path"

	"github.com/google/uuid"
	"house-preview-backend/internal/metrics"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/validation"
)

// ImageKind selects the namespace an attachment is stored under.
type ImageKind struct {
	Dir         string
	Extension   string
	ContentType string
}

var (
	RasterImage = ImageKind{
		Dir:         "house_previews/images",
		Extension:   validation.PNGImageRule.Extension(),
		ContentType: validation.PNGImageRule.ContentType(),
	}
	VectorImage = ImageKind{
		Dir:         "house_previews/svg",
		Extension:   validation.SVGImageRule.Extension(),
		ContentType: validation.SVGImageRule.ContentType(),
	}
)

type UploadService struct {
	blobs BlobStore
}

func NewUploadService(blobs BlobStore) *UploadService {
	return &UploadService{blobs: blobs}
}

// Store writes the attachment under the kind's directory with a random
// name and returns its relative path. A nil attachment writes nothing and
// returns "".
func (s *UploadService) Store(ctx context.Context, kind ImageKind, a *models.Attachment) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", nil
	}

	storagePath := path.Join(kind.Dir, uuid.New().String()+kind.Extension)
	err := s.blobs.Put(ctx, storagePath, a.Data, kind.ContentType)
	metrics.RecordBlobOperation("put", err)
	if err != nil {
		return "", &StorageError{Op: "put", Path: storagePath, Err: err}
	}
	return storagePath, nil
}

// Cleanup deletes every stored blob among paths. Empty paths are skipped
// and blobs that no longer exist are not an error.
func (s *UploadService) Cleanup(ctx context.Context, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}

		exists, err := s.blobs.Exists(ctx, p)
		metrics.RecordBlobOperation("exists", err)
		if err != nil {
			errs = append(errs, &StorageError{Op: "exists", Path: p, Err: err})
			continue
		}
		if !exists {
			continue
		}

		err = s.blobs.Delete(ctx, p)
		metrics.RecordBlobOperation("delete", err)
		if err != nil {
			errs = append(errs, &StorageError{Op: "delete", Path: p, Err: err})
		}
	}
	return errors.Join(errs...)
}

// PublicURL returns the URL a stored path is served from.
func (s *UploadService) PublicURL(storagePath string) string {
	return s.blobs.PublicURL(storagePath)
}
