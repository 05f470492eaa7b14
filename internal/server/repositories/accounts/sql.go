// Package accounts persists accounts for both supported SQL dialects.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

const accountColumns = `id, account, email, password_hash, name, introduction, avatar, cover, role, created_at, updated_at`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a                models.Account
		role             string
		created, updated int64
	)
	err := row.Scan(&a.ID, &a.Account, &a.Email, &a.PasswordHash, &a.Name,
		&a.Introduction, &a.Avatar, &a.Cover, &role, &created, &updated)
	if err != nil {
		return nil, err
	}
	a.Role = models.Role(role)
	a.CreatedAt = dbx.FromMillis(created)
	a.UpdatedAt = dbx.FromMillis(updated)
	return &a, nil
}

func writeError(err error) error {
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", common.ErrorAlreadyExists, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = account.CreatedAt
	}
	if account.Role == "" {
		account.Role = models.RoleUser
	}

	query :=
		`INSERT INTO accounts (account, email, password_hash, name, introduction, avatar, cover, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		account.Account, account.Email, account.PasswordHash, account.Name,
		account.Introduction, account.Avatar, account.Cover, string(account.Role),
		dbx.ToMillis(account.CreatedAt), dbx.ToMillis(account.UpdatedAt),
	).Scan(&account.ID)
	if err != nil {
		return nil, writeError(err)
	}

	return account, nil
}

func (r *SQLRepository) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now()

	query :=
		`UPDATE accounts
		 SET account = $1, email = $2, password_hash = $3, name = $4,
		     introduction = $5, avatar = $6, cover = $7, updated_at = $8
		 WHERE id = $9`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		account.Account, account.Email, account.PasswordHash, account.Name,
		account.Introduction, account.Avatar, account.Cover,
		dbx.ToMillis(account.UpdatedAt), account.ID,
	)
	if err != nil {
		return writeError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) getOne(ctx context.Context, where string, arg any) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where

	a, err := scanAccount(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *SQLRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	return r.getOne(ctx, `account = $1`, login)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, `email = $1`, email)
}

// ListWithStats returns every account in id order together with its tweet,
// follower and following counts.
func (r *SQLRepository) ListWithStats(ctx context.Context) ([]models.AccountStats, error) {
	query :=
		`SELECT a.id, a.account, a.email, a.password_hash, a.name, a.introduction, a.avatar, a.cover, a.role, a.created_at, a.updated_at,
		        (SELECT COUNT(*) FROM tweets t WHERE t.owner_id = a.id),
		        (SELECT COUNT(*) FROM followships f WHERE f.following_id = a.id),
		        (SELECT COUNT(*) FROM followships f WHERE f.follower_id = a.id)
		 FROM accounts a
		 ORDER BY a.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.AccountStats
	for rows.Next() {
		var (
			s                models.AccountStats
			role             string
			created, updated int64
		)
		err := rows.Scan(&s.Account.ID, &s.Account.Account, &s.Account.Email, &s.Account.PasswordHash,
			&s.Account.Name, &s.Account.Introduction, &s.Account.Avatar, &s.Account.Cover, &role,
			&created, &updated, &s.TweetCount, &s.FollowerCount, &s.FollowingCount)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Account.Role = models.Role(role)
		s.Account.CreatedAt = dbx.FromMillis(created)
		s.Account.UpdatedAt = dbx.FromMillis(updated)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
