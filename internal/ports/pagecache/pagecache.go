package pagecache

import (
	"context"
	"fmt"
	"time"
)

// PageCache keeps fully rendered responses for a fixed time. Entries are
// never invalidated by writes; they expire or get cleared by an operator.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Key identifies a cached page of a view.
func Key(view string, page int) string {
	return fmt.Sprintf("%s:%d", view, page)
}
