// Package tweets reads the content table owned by the content service.
package tweets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM tweets WHERE owner_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
