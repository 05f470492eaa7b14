package accounts

import (
	"context"

	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

// Repository is the credential store accessor. Lookups return
// common.ErrorNotFound for unknown keys; writes return
// common.ErrorAlreadyExists when the login handle or email is taken.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByLogin(ctx context.Context, login string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ListWithStats(ctx context.Context) ([]models.AccountStats, error)
}
