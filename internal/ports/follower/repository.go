package follower

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/follower"
)

// FollowerRepository stores follow edges.
type FollowerRepository interface {
	// Follow inserts the edge unless it already exists.
	Follow(ctx context.Context, f *follower.Follow) error
	// Unfollow removes the edge and reports whether one existed.
	Unfollow(ctx context.Context, userID uuid.UUID, t follower.Target) (bool, error)
	IsFollowing(ctx context.Context, userID uuid.UUID, t follower.Target) (bool, error)
	CountFollowers(ctx context.Context, t follower.Target) (int, error)
}
