package record

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object. Key is the full storage key.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// ObjectStore is the blob backend for medical records. Get returns
// ErrObjectNotFound for missing keys.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)
	URL(ctx context.Context, key string) (string, error)
}
