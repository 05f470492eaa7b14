// Package storetest opens migrated in-memory SQLite databases for tests.
package storetest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/repomanager"
)

var seq atomic.Int64

// NewSQLite returns a fresh, fully migrated in-memory database. Each call
// gets its own database name so tests never see each other's rows.
func NewSQLite(t testing.TB) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	ctx := context.Background()
	db, dialect, err := repomanager.Open(ctx, "sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db, rm
}

// CreateAccount inserts an account with a placeholder password hash.
func CreateAccount(t testing.TB, db dbx.DBTX, rm repomanager.RepositoryManager, login string, role models.Role) *models.Account {
	t.Helper()

	a, err := rm.Accounts(db).Create(context.Background(), &models.Account{
		Account:      login,
		Email:        login + "@example.com",
		PasswordHash: "x",
		Name:         login,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create account %q: %v", login, err)
	}
	return a
}

// CreateTweets inserts n tweets owned by ownerID.
func CreateTweets(t testing.TB, db *sql.DB, rm repomanager.RepositoryManager, ownerID int64, n int) {
	t.Helper()

	q := rm.Dialect().Rebind(`INSERT INTO tweets (owner_id, description, created_at, updated_at) VALUES ($1, $2, $3, $3)`)
	for i := 0; i < n; i++ {
		if _, err := db.Exec(q, ownerID, fmt.Sprintf("tweet %d", i), int64(i+1)); err != nil {
			t.Fatalf("create tweet: %v", err)
		}
	}
}
