package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when no object exists under the key
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore defines the operations every blob backend provides
type ObjectStore interface {
	// Put writes size bytes from r under key
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get opens the object stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes the object. A missing object is not an error.
	Remove(ctx context.Context, key string) error
}
