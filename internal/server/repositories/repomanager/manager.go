// Package repomanager opens the database, applies the embedded goose
// migrations and vends repository implementations bound to a DBTX.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/follows"
	"github.com/dmitrijs2005/simpletwitter/internal/server/repositories/tweets"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Follows(db dbx.DBTX) follows.Repository
	Tweets(db dbx.DBTX) tweets.Repository
}
