// Package follows persists the follow graph.
package follows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts the edge. A duplicate pair yields common.ErrorAlreadyExists
// and a missing account on either end yields common.ErrorNotFound.
func (r *SQLRepository) Create(ctx context.Context, edge models.FollowEdge) error {
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}

	query :=
		`INSERT INTO followships (follower_id, following_id, created_at)
		 VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		edge.FollowerID, edge.FollowingID, dbx.ToMillis(edge.CreatedAt))
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return fmt.Errorf("%w: %w", common.ErrorAlreadyExists, err)
		case dbx.IsForeignKeyViolation(err):
			return fmt.Errorf("%w: %w", common.ErrorNotFound, err)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the edge and reports how many rows went away (0 or 1).
func (r *SQLRepository) Delete(ctx context.Context, followerID, followingID int64) (int64, error) {
	query :=
		`DELETE FROM followships
		 WHERE follower_id = $1 AND following_id = $2`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), followerID, followingID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM followships WHERE follower_id = $1 AND following_id = $2
		 )`

	var ok bool
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), followerID, followingID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *SQLRepository) Count(ctx context.Context, filter models.EdgeFilter) (int64, error) {
	var (
		conds []string
		args  []any
	)
	if filter.FollowerID != 0 {
		args = append(args, filter.FollowerID)
		conds = append(conds, "follower_id = $"+strconv.Itoa(len(args)))
	}
	if filter.FollowingID != 0 {
		args = append(args, filter.FollowingID)
		conds = append(conds, "following_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT COUNT(*) FROM followships`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) FollowerIDs(ctx context.Context, accountID int64) ([]int64, error) {
	return r.ids(ctx, `SELECT follower_id FROM followships WHERE following_id = $1`, accountID)
}

func (r *SQLRepository) FollowingIDs(ctx context.Context, accountID int64) ([]int64, error) {
	return r.ids(ctx, `SELECT following_id FROM followships WHERE follower_id = $1`, accountID)
}

func (r *SQLRepository) ids(ctx context.Context, query string, accountID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// ListFollowers returns the accounts following accountID, newest edge first.
func (r *SQLRepository) ListFollowers(ctx context.Context, accountID int64) ([]models.FollowEntry, error) {
	query :=
		`SELECT a.id, a.account, a.name, a.avatar, a.introduction, f.created_at
		 FROM followships f
		 JOIN accounts a ON a.id = f.follower_id
		 WHERE f.following_id = $1
		 ORDER BY f.created_at DESC, a.id DESC`

	return r.entries(ctx, query, accountID)
}

// ListFollowings returns the accounts accountID follows, newest edge first.
func (r *SQLRepository) ListFollowings(ctx context.Context, accountID int64) ([]models.FollowEntry, error) {
	query :=
		`SELECT a.id, a.account, a.name, a.avatar, a.introduction, f.created_at
		 FROM followships f
		 JOIN accounts a ON a.id = f.following_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC, a.id DESC`

	return r.entries(ctx, query, accountID)
}

func (r *SQLRepository) entries(ctx context.Context, query string, accountID int64) ([]models.FollowEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.FollowEntry
	for rows.Next() {
		var (
			e       models.FollowEntry
			created int64
		)
		if err := rows.Scan(&e.AccountID, &e.Account, &e.Name, &e.Avatar, &e.Introduction, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.FollowedAt = dbx.FromMillis(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// TopFollowed ranks accounts by follower count. Equal counts are ordered by
// ascending account id, so older accounts come first.
func (r *SQLRepository) TopFollowed(ctx context.Context, limit int) ([]models.AccountSummary, error) {
	query :=
		`SELECT a.id, a.account, a.name, a.avatar, COUNT(f.follower_id) AS follower_count
		 FROM accounts a
		 LEFT JOIN followships f ON f.following_id = a.id
		 GROUP BY a.id, a.account, a.name, a.avatar
		 ORDER BY follower_count DESC, a.id ASC
		 LIMIT $1`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.AccountSummary
	for rows.Next() {
		var s models.AccountSummary
		if err := rows.Scan(&s.ID, &s.Account, &s.Name, &s.Avatar, &s.FollowerCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
