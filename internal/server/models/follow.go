package models

import "time"

// FollowEdge is the directed fact "FollowerID follows FollowingID".
type FollowEdge struct {
	FollowerID  int64
	FollowingID int64
	CreatedAt   time.Time
}

// EdgeFilter selects edges for counting. A zero field matches any id.
type EdgeFilter struct {
	FollowerID  int64
	FollowingID int64
}

// Aggregate is the read-side view of one account relative to a viewer.
type Aggregate struct {
	FollowerCount  int64
	FollowingCount int64
	ContentCount   int64
	IsFollowed     bool
}

// AccountSummary is a compact account row used by ranked listings.
type AccountSummary struct {
	ID            int64
	Account       string
	Name          string
	Avatar        string
	FollowerCount int64
	IsFollowed    bool
}

// FollowEntry is one row of a followers or followings list: the account on
// the other end of the edge and when the edge was created.
type FollowEntry struct {
	AccountID    int64
	Account      string
	Name         string
	Avatar       string
	Introduction string
	FollowedAt   time.Time
	IsFollowed   bool
}
