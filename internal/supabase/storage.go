package supabase

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient stores blobs in a Supabase Storage bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(client *storage.Client, supabaseURL, bucket string) *StorageClient {
	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(supabaseURL, "/"),
	}
}

func (s *StorageClient) Put(_ context.Context, storagePath string, data []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// listPageSize is the number of objects requested per folder listing call.
const listPageSize = 1000

// Exists pages through the parent folder looking for the file name, since
// the bucket API has no direct stat call.
func (s *StorageClient) Exists(_ context.Context, storagePath string) (bool, error) {
	dir, name := path.Split(storagePath)
	prefix := strings.TrimSuffix(dir, "/")

	for offset := 0; ; offset += listPageSize {
		files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
			Limit:  listPageSize,
			Offset: offset,
		})
		if err != nil {
			return false, fmt.Errorf("failed to list files: %w", err)
		}
		for _, f := range files {
			if f.Name == name {
				return true, nil
			}
		}
		if len(files) < listPageSize {
			return false, nil
		}
	}
}

func (s *StorageClient) Delete(_ context.Context, storagePath string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{storagePath}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}
