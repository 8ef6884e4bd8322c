package ports

import (
	"context"
	"io"
)

// ObjectStore guarda e recupera arquivos enviados.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
