package auth

import (
	"slices"

	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

// FollowingSet answers "does this viewer follow id?".
type FollowingSet interface {
	IsFollowing(id int64) bool
}

// Identity is the account a request runs as. Edge sets are only present
// when the identity was built by the token strategy.
type Identity struct {
	account    models.Account
	followers  map[int64]struct{}
	followings map[int64]struct{}
	resolved   bool
}

var _ FollowingSet = (*Identity)(nil)

// NewIdentity wraps an account without follow edges. The password hash is
// dropped.
func NewIdentity(a *models.Account) *Identity {
	acc := *a
	acc.PasswordHash = ""
	return &Identity{account: acc}
}

// NewIdentityWithEdges wraps an account together with the ids of its
// followers and of the accounts it follows.
func NewIdentityWithEdges(a *models.Account, followerIDs, followingIDs []int64) *Identity {
	id := NewIdentity(a)
	id.followers = toSet(followerIDs)
	id.followings = toSet(followingIDs)
	id.resolved = true
	return id
}

func toSet(ids []int64) map[int64]struct{} {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func (i *Identity) ID() int64               { return i.account.ID }
func (i *Identity) Role() models.Role       { return i.account.Role }
func (i *Identity) Account() models.Account { return i.account }
func (i *Identity) EdgesResolved() bool     { return i.resolved }

// IsFollowing is safe on a nil Identity, which follows nobody.
func (i *Identity) IsFollowing(id int64) bool {
	if i == nil {
		return false
	}
	_, ok := i.followings[id]
	return ok
}

func (i *Identity) IsFollowedBy(id int64) bool {
	if i == nil {
		return false
	}
	_, ok := i.followers[id]
	return ok
}

func (i *Identity) FollowingIDs() []int64 { return sortedKeys(i.followings) }
func (i *Identity) FollowerIDs() []int64  { return sortedKeys(i.followers) }

func sortedKeys(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
