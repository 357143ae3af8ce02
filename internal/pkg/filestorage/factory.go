package filestorage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pucknotes/server/internal/config"
)

// New builds the object store selected by cfg.Storage.Backend
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	sc := cfg.Storage
	switch strings.ToLower(sc.Backend) {
	case config.StorageLocal, "":
		return NewLocalStorage(sc.Local.Path)
	case config.StorageMinio:
		return NewMinioStorage(ctx, MinioConfig{
			Endpoint:  sc.Minio.Endpoint,
			AccessKey: sc.Minio.AccessKey,
			SecretKey: sc.Minio.SecretKey,
			UseSSL:    sc.Minio.UseSSL,
			Bucket:    sc.Bucket,
		})
	case config.StorageSupabase:
		return NewSupabaseStorage(sc.Supabase.URL, sc.Supabase.Key, sc.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
