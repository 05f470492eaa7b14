package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
)

const (
	MaxNameLength         = 50
	MaxIntroductionLength = 160
)

type SignUpInput struct {
	Account       string
	Name          string
	Email         string
	Password      string
	CheckPassword string
}

// AccountUpdate replaces login handle, email and name. An empty Password
// keeps the current one.
type AccountUpdate struct {
	Account       string
	Name          string
	Email         string
	Password      string
	CheckPassword string
}

// ProfileUpdate replaces name and introduction. Empty Avatar or Cover keep
// the stored key.
type ProfileUpdate struct {
	Name         string
	Introduction string
	Avatar       string
	Cover        string
}

// Profile is an account with its graph aggregate.
type Profile struct {
	Account   models.Account
	Aggregate models.Aggregate
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	graph       *GraphService
}

func NewAccountService(db *sql.DB, rm repomanager.RepositoryManager, hasher *auth.Hasher, graph *GraphService) *AccountService {
	return &AccountService{db: db, repomanager: rm, hasher: hasher, graph: graph}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidArgument, msg)
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return invalid(fmt.Sprintf("name exceeds %d characters", MaxNameLength))
	}
	return nil
}

func validateCredentials(account, name, email, password, check string, passwordRequired bool) error {
	if account == "" || name == "" || email == "" || (passwordRequired && password == "") {
		if passwordRequired {
			return invalid("account, name, email and password are required")
		}
		return invalid("account, name and email are required")
	}
	if password != check {
		return invalid("passwords do not match")
	}
	return validateName(name)
}

// SignUp registers a user account.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*models.Account, error) {
	in.Account = strings.TrimSpace(in.Account)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateCredentials(in.Account, in.Name, in.Email, in.Password, in.CheckPassword, true); err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	if err := s.checkAvailable(ctx, repo, 0, in.Account, in.Email); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account, err := repo.Create(ctx, &models.Account{
		Account:      in.Account,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: digest,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, s.conflict(ctx, repo, 0, in.Account, in.Email)
		}
		return nil, storageErr(err)
	}

	account.PasswordHash = ""
	return account, nil
}

// checkAvailable fails when login or email belongs to an account other
// than selfID.
func (s *AccountService) checkAvailable(ctx context.Context, repo accounts.Repository, selfID int64, login, email string) error {
	taken, err := repo.GetByLogin(ctx, login)
	switch {
	case err == nil && taken.ID != selfID:
		return common.ErrAccountTaken
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return storageErr(err)
	}

	taken, err = repo.GetByEmail(ctx, email)
	switch {
	case err == nil && taken.ID != selfID:
		return common.ErrEmailTaken
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return storageErr(err)
	}
	return nil
}

// conflict names which unique field lost a race with a concurrent writer.
func (s *AccountService) conflict(ctx context.Context, repo accounts.Repository, selfID int64, login, email string) error {
	if err := s.checkAvailable(ctx, repo, selfID, login, email); err != nil {
		return err
	}
	return common.ErrAccountTaken
}

// GetProfile returns subjectID's public data and aggregate as seen by
// viewer.
func (s *AccountService) GetProfile(ctx context.Context, subjectID int64, viewer auth.FollowingSet) (*Profile, error) {
	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, storageErr(err)
	}
	account.PasswordHash = ""

	agg, err := s.graph.Aggregate(ctx, subjectID, viewer)
	if err != nil {
		return nil, err
	}

	return &Profile{Account: *account, Aggregate: *agg}, nil
}

// PutAccount lets an account owner change login, email, name and password.
func (s *AccountService) PutAccount(ctx context.Context, actorID, targetID int64, in AccountUpdate) (*models.Account, error) {
	if actorID != targetID {
		return nil, common.ErrForbidden
	}

	in.Account = strings.TrimSpace(in.Account)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateCredentials(in.Account, in.Name, in.Email, in.Password, in.CheckPassword, false); err != nil {
		return nil, err
	}

	var digest string
	if in.Password != "" {
		var err error
		if digest, err = s.hasher.Hash(in.Password); err != nil {
			return nil, err
		}
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccountNotFound
			}
			return storageErr(err)
		}

		if err := s.checkAvailable(ctx, repo, targetID, in.Account, in.Email); err != nil {
			return err
		}

		account.Account = in.Account
		account.Email = in.Email
		account.Name = in.Name
		if digest != "" {
			account.PasswordHash = digest
		}

		if err := repo.Update(ctx, account); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrAccountTaken
			}
			return storageErr(err)
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.PasswordHash = ""
	return updated, nil
}

// PutProfile lets an account owner change name, introduction and media keys.
// Media keys must live under the owner's prefix.
func (s *AccountService) PutProfile(ctx context.Context, actorID, targetID int64, in ProfileUpdate) (*models.Account, error) {
	if actorID != targetID {
		return nil, common.ErrForbidden
	}
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Introduction) > MaxIntroductionLength {
		return nil, invalid(fmt.Sprintf("introduction exceeds %d characters", MaxIntroductionLength))
	}
	for _, key := range []string{in.Avatar, in.Cover} {
		if key != "" && !OwnsMediaKey(targetID, key) {
			return nil, invalid("media key does not belong to this account")
		}
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccountNotFound
			}
			return storageErr(err)
		}

		account.Name = in.Name
		account.Introduction = in.Introduction
		if in.Avatar != "" {
			account.Avatar = in.Avatar
		}
		if in.Cover != "" {
			account.Cover = in.Cover
		}

		if err := repo.Update(ctx, account); err != nil {
			return storageErr(err)
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.PasswordHash = ""
	return updated, nil
}

// ListAccounts returns every account with its counters.
func (s *AccountService) ListAccounts(ctx context.Context) ([]models.AccountStats, error) {
	list, err := s.repomanager.Accounts(s.db).ListWithStats(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	for i := range list {
		list[i].Account.PasswordHash = ""
	}
	return list, nil
}
