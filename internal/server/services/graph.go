package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
)

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// GraphService derives read-side aggregates from the edge set. Nothing is
// cached; every count reflects storage at call time.
type GraphService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGraphService(db *sql.DB, rm repomanager.RepositoryManager) *GraphService {
	return &GraphService{db: db, repomanager: rm}
}

func (s *GraphService) FollowerCount(ctx context.Context, accountID int64) (int64, error) {
	n, err := s.repomanager.Follows(s.db).Count(ctx, models.EdgeFilter{FollowingID: accountID})
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (s *GraphService) FollowingCount(ctx context.Context, accountID int64) (int64, error) {
	n, err := s.repomanager.Follows(s.db).Count(ctx, models.EdgeFilter{FollowerID: accountID})
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func (s *GraphService) ContentCount(ctx context.Context, accountID int64) (int64, error) {
	n, err := s.repomanager.Tweets(s.db).CountByOwner(ctx, accountID)
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// IsFollowedByViewer reports whether viewer follows subjectID. A nil viewer
// follows nobody.
func IsFollowedByViewer(subjectID int64, viewer auth.FollowingSet) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsFollowing(subjectID)
}

// Aggregate collects all counters for subjectID as seen by viewer.
func (s *GraphService) Aggregate(ctx context.Context, subjectID int64, viewer auth.FollowingSet) (*models.Aggregate, error) {
	followers, err := s.FollowerCount(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	followings, err := s.FollowingCount(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	content, err := s.ContentCount(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &models.Aggregate{
		FollowerCount:  followers,
		FollowingCount: followings,
		ContentCount:   content,
		IsFollowed:     IsFollowedByViewer(subjectID, viewer),
	}, nil
}

// TopFollowed returns up to limit accounts with the most followers, ties
// going to the earlier account. A non-positive limit means DefaultTopLimit;
// larger limits are capped at MaxTopLimit.
func (s *GraphService) TopFollowed(ctx context.Context, limit int, viewer auth.FollowingSet) ([]models.AccountSummary, error) {
	switch {
	case limit <= 0:
		limit = DefaultTopLimit
	case limit > MaxTopLimit:
		limit = MaxTopLimit
	}

	top, err := s.repomanager.Follows(s.db).TopFollowed(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}

	for i := range top {
		top[i].IsFollowed = IsFollowedByViewer(top[i].ID, viewer)
	}
	return top, nil
}

// Followers lists who follows accountID, newest first.
func (s *GraphService) Followers(ctx context.Context, accountID int64, viewer auth.FollowingSet) ([]models.FollowEntry, error) {
	list, err := s.repomanager.Follows(s.db).ListFollowers(ctx, accountID)
	if err != nil {
		return nil, storageErr(err)
	}
	markFollowed(list, viewer)
	return list, nil
}

// Followings lists whom accountID follows, newest first.
func (s *GraphService) Followings(ctx context.Context, accountID int64, viewer auth.FollowingSet) ([]models.FollowEntry, error) {
	list, err := s.repomanager.Follows(s.db).ListFollowings(ctx, accountID)
	if err != nil {
		return nil, storageErr(err)
	}
	markFollowed(list, viewer)
	return list, nil
}

func markFollowed(list []models.FollowEntry, viewer auth.FollowingSet) {
	for i := range list {
		list[i].IsFollowed = IsFollowedByViewer(list[i].AccountID, viewer)
	}
}
