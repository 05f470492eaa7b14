package services

import (
	"fmt"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
)

// storageErr marks a collaborator failure so callers can tell it apart from
// domain violations while keeping the cause.
func storageErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}
