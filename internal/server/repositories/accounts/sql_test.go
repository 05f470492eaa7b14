package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/dbx"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

var accountCols = []string{"id", "account", "email", "password_hash", "name", "introduction", "avatar", "cover", "role", "created_at", "updated_at"}

const insertQ = `(?s)^INSERT\s+INTO\s+accounts\s*\(account,\s*email,\s*password_hash,\s*name,\s*introduction,\s*avatar,\s*cover,\s*role,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,.*\$10\)\s*RETURNING\s+id$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("alice", "alice@example.com", "hash", "Alice", "", "", "", "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), &models.Account{
		Account: "alice", Email: "alice@example.com", PasswordHash: "hash", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Role != models.RoleUser || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected account: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Account{Account: "alice"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Account: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*account,.*updated_at\s+FROM\s+accounts\s+WHERE\s+account\s*=\s*\$1$`

	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow(int64(1), "alice", "a@x.io", "hash", "Alice", "hi", "av", "cv", "admin", int64(1700000000000), int64(1700000000500)))

	got, err := repo.GetByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByLogin error: %v", err)
	}
	if got.ID != 1 || got.Account != "alice" || got.Role != models.RoleAdmin || got.Introduction != "hi" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.CreatedAt.UnixMilli() != 1700000000000 || got.UpdatedAt.UnixMilli() != 1700000000500 {
		t.Fatalf("unexpected timestamps: %v %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("a@x.io").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "a@x.io")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	q := `(?s)^UPDATE\s+accounts\s+SET\s+account\s*=\s*\$1,.*WHERE\s+id\s*=\s*\$9$`

	t.Run("ok", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).
			WithArgs("alice", "a@x.io", "hash", "Alice", "", "", "", sqlmock.AnyArg(), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &models.Account{ID: 1, Account: "alice", Email: "a@x.io", PasswordHash: "hash", Name: "Alice"})
		if err != nil {
			t.Fatalf("Update error: %v", err)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &models.Account{ID: 5})
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want ErrorNotFound, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Update(context.Background(), &models.Account{ID: 5})
		if !errors.Is(err, common.ErrorAlreadyExists) {
			t.Fatalf("want ErrorAlreadyExists, got %v", err)
		}
	})
}

func TestListWithStats(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := append(append([]string{}, accountCols...), "tweets", "followers", "followings")
	mock.ExpectQuery(`(?s)^SELECT\s+a\.id,.*FROM\s+accounts\s+a\s+ORDER\s+BY\s+a\.id$`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "root", "r@x.io", "h", "Root", "", "", "", "admin", int64(1), int64(1), int64(0), int64(0), int64(0)).
			AddRow(int64(2), "bob", "b@x.io", "h", "Bob", "", "", "", "user", int64(2), int64(2), int64(3), int64(1), int64(2)))

	got, err := repo.ListWithStats(context.Background())
	if err != nil {
		t.Fatalf("ListWithStats error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[1].Account.Account != "bob" || got[1].TweetCount != 3 || got[1].FollowerCount != 1 || got[1].FollowingCount != 2 {
		t.Fatalf("unexpected stats: %+v", got[1])
	}
}

func TestListWithStats_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+accounts\s+a`).WillReturnError(errors.New("boom"))

	if _, err := repo.ListWithStats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
