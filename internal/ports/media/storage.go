package media

import (
	"context"
	"io"
)

// MediaStorage keeps uploaded blobs addressable by a relative path such as "posts/cat.gif".
type MediaStorage interface {
	Save(ctx context.Context, dir, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
