package tweets

import "context"

// Repository exposes the one fact the graph layer needs about content.
// Tweets themselves are written by the content service.
type Repository interface {
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}
