package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/auth"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/simpletwitter/internal/server/storetest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "12345678"

type testEnv struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	hasher   *auth.Hasher
	codec    *auth.TokenCodec
	auth     *AuthService
	follows  *FollowService
	graph    *GraphService
	accounts *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, rm := storetest.NewSQLite(t)
	hasher := auth.NewHasher(bcrypt.MinCost)
	codec, err := auth.NewTokenCodec([]byte("test-secret"))
	require.NoError(t, err)

	graph := NewGraphService(db, rm)
	return &testEnv{
		db:       db,
		rm:       rm,
		hasher:   hasher,
		codec:    codec,
		auth:     NewAuthService(db, rm, hasher, codec, 30*24*time.Hour),
		follows:  NewFollowService(db, rm),
		graph:    graph,
		accounts: NewAccountService(db, rm, hasher, graph),
	}
}

// signUp registers login with testPassword.
func (e *testEnv) signUp(t *testing.T, login string) *models.Account {
	t.Helper()
	a, err := e.accounts.SignUp(context.Background(), SignUpInput{
		Account:       login,
		Name:          login,
		Email:         login + "@example.com",
		Password:      testPassword,
		CheckPassword: testPassword,
	})
	require.NoError(t, err)
	return a
}

// admin inserts an admin account directly, as there is no admin sign-up.
func (e *testEnv) admin(t *testing.T, login string) *models.Account {
	t.Helper()
	digest, err := e.hasher.Hash(testPassword)
	require.NoError(t, err)
	a, err := e.rm.Accounts(e.db).Create(context.Background(), &models.Account{
		Account: login, Email: login + "@example.com", Name: login, PasswordHash: digest, Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	return a
}

// identity resolves a fresh request identity for account through the token
// strategy.
func (e *testEnv) identity(t *testing.T, account *models.Account) *auth.Identity {
	t.Helper()
	tok, err := e.auth.IssueSessionToken(auth.NewIdentity(account))
	require.NoError(t, err)
	id, err := e.auth.AuthenticateByToken(context.Background(), tok)
	require.NoError(t, err)
	return id
}

// newBrokenStore returns a Postgres-dialect manager over sqlmock with no
// expectations, so every statement fails.
func newBrokenStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, repomanager.NewSQLRepositoryManager(dbx.Postgres), mock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}
