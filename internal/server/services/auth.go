package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
)

// AuthService is the authentication gate. It turns credentials or a bearer
// token into an auth.Identity and issues session tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	codec       *auth.TokenCodec
	tokenTTL    time.Duration

	// dummyDigest is verified against when the login id is unknown, so both
	// failure paths cost one bcrypt comparison.
	dummyDigest string
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, hasher *auth.Hasher, codec *auth.TokenCodec, tokenTTL time.Duration) *AuthService {
	dummy, _ := hasher.Hash("simpletwitter-dummy-password")
	return &AuthService{
		db:          db,
		repomanager: rm,
		hasher:      hasher,
		codec:       codec,
		tokenTTL:    tokenTTL,
		dummyDigest: dummy,
	}
}

// AuthenticateByPassword is the password strategy. Follow edges are not
// resolved on the returned identity.
func (s *AuthService) AuthenticateByPassword(ctx context.Context, loginID, secret string) (*auth.Identity, error) {
	account, err := s.repomanager.Accounts(s.db).GetByLogin(ctx, loginID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(secret, s.dummyDigest)
			return nil, common.ErrAccountNotFound
		}
		return nil, storageErr(err)
	}

	if !s.hasher.Verify(secret, account.PasswordHash) {
		return nil, common.ErrBadCredentials
	}

	return auth.NewIdentity(account), nil
}

// AuthenticateByToken is the bearer strategy. The identity carries the
// account's follower and following id sets as of this call.
func (s *AuthService) AuthenticateByToken(ctx context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, storageErr(err)
	}

	follows := s.repomanager.Follows(s.db)

	followers, err := follows.FollowerIDs(ctx, account.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	followings, err := follows.FollowingIDs(ctx, account.ID)
	if err != nil {
		return nil, storageErr(err)
	}

	return auth.NewIdentityWithEdges(account, followers, followings), nil
}

// IssueSessionToken signs a token for identity valid for the configured
// session lifetime.
func (s *AuthService) IssueSessionToken(identity *auth.Identity) (string, error) {
	if identity == nil {
		return "", common.ErrUnauthenticated
	}
	account := identity.Account()
	return s.codec.Issue(auth.ClaimsFor(&account), s.tokenTTL)
}

// Login runs the password strategy, requires role and issues a token.
func (s *AuthService) Login(ctx context.Context, loginID, secret string, role models.Role) (string, *auth.Identity, error) {
	identity, err := s.AuthenticateByPassword(ctx, loginID, secret)
	if err != nil {
		return "", nil, err
	}

	if err := auth.Authorize(identity, role); err != nil {
		return "", nil, err
	}

	token, err := s.IssueSessionToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}
