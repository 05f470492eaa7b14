package follows

import (
	"context"

	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

// Repository stores follow edges. The composite key on
// (follower_id, following_id) makes Create fail with
// common.ErrorAlreadyExists for a duplicate edge.
type Repository interface {
	Create(ctx context.Context, edge models.FollowEdge) error
	Delete(ctx context.Context, followerID, followingID int64) (int64, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Count(ctx context.Context, filter models.EdgeFilter) (int64, error)
	FollowerIDs(ctx context.Context, accountID int64) ([]int64, error)
	FollowingIDs(ctx context.Context, accountID int64) ([]int64, error)
	ListFollowers(ctx context.Context, accountID int64) ([]models.FollowEntry, error)
	ListFollowings(ctx context.Context, accountID int64) ([]models.FollowEntry, error)
	TopFollowed(ctx context.Context, limit int) ([]models.AccountSummary, error)
}
