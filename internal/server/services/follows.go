package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
)

// FollowService is the follow graph manager. The composite key on
// followships, not this type, serializes concurrent follows of one pair.
type FollowService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFollowService(db *sql.DB, rm repomanager.RepositoryManager) *FollowService {
	return &FollowService{db: db, repomanager: rm}
}

// Follow creates the edge viewerID -> targetID. Checks run in a fixed
// order: self-follow, target existence, existing edge.
func (s *FollowService) Follow(ctx context.Context, viewerID, targetID int64) error {
	if viewerID == targetID {
		return common.ErrSelfFollow
	}

	if _, err := s.repomanager.Accounts(s.db).GetByID(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrTargetNotFound
		}
		return storageErr(err)
	}

	follows := s.repomanager.Follows(s.db)

	exists, err := follows.Exists(ctx, viewerID, targetID)
	if err != nil {
		return storageErr(err)
	}
	if exists {
		return common.ErrAlreadyFollowing
	}

	err = follows.Create(ctx, models.FollowEdge{FollowerID: viewerID, FollowingID: targetID})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.ErrAlreadyFollowing
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrTargetNotFound
	default:
		return storageErr(err)
	}
}

// Unfollow removes the edge viewerID -> targetID.
func (s *FollowService) Unfollow(ctx context.Context, viewerID, targetID int64) error {
	n, err := s.repomanager.Follows(s.db).Delete(ctx, viewerID, targetID)
	if err != nil {
		return storageErr(err)
	}
	if n == 0 {
		return common.ErrNotFollowing
	}
	return nil
}
