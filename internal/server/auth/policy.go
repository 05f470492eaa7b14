package auth

import (
	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

// Authorize allows the request only when the identity's role equals
// required. There is no hierarchy: an admin is not a user.
func Authorize(identity *Identity, required models.Role) error {
	if identity == nil || identity.Role() != required {
		return common.ErrForbidden
	}
	return nil
}
