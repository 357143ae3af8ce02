package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStorage keeps objects in a Supabase Storage bucket
type SupabaseStorage struct {
	client *storage.Client
	bucket string
}

// NewSupabaseStorage creates a client for the project at url
func NewSupabaseStorage(url, key, bucket string) *SupabaseStorage {
	client := storage.NewClient(strings.TrimRight(url, "/")+"/storage/v1", key, nil)
	return &SupabaseStorage{client: client, bucket: bucket}
}

func (s *SupabaseStorage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	options := storage.FileOptions{
		ContentType: &contentType,
	}
	if _, err := s.client.UploadFile(s.bucket, key, r, options); err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	return nil
}

func (s *SupabaseStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("download object %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Remove deletes the object. Supabase reports success for missing paths.
func (s *SupabaseStorage) Remove(_ context.Context, key string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
