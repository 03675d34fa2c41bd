package follow

import (
	"context"

	"inkwell/internal/core/follow"
)

// FollowRepository stores follow edges. Create reports a conflict when the
// (author, user) pair already exists.
type FollowRepository interface {
	Create(ctx context.Context, follow *follow.Follow) (*follow.Follow, error)
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
}
