package auth

import (
	"fmt"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Hasher is the password verifier: salted bcrypt digests with a
// constant-time comparison on verify.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher; a cost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrInvalidArgument)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidArgument, err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. A malformed digest is a
// mismatch.
func (h *Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
