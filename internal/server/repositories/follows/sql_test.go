package follows

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

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

const insertQ = `(?s)^INSERT\s+INTO\s+followships\s*\(follower_id,\s*following_id,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)$`

func TestCreate(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	tests := []struct {
		name    string
		dbErr   error
		wantIs  error
		wantMsg string
	}{
		{name: "ok"},
		{name: "duplicate", dbErr: &pgconn.PgError{Code: "23505"}, wantIs: common.ErrorAlreadyExists},
		{name: "missing account", dbErr: &pgconn.PgError{Code: "23503"}, wantIs: common.ErrorNotFound},
		{name: "other", dbErr: errors.New("conn reset"), wantMsg: `db error: .*conn reset`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(insertQ).WithArgs(int64(1), int64(2), int64(1700000000000))
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Create(context.Background(), models.FollowEdge{FollowerID: 1, FollowingID: 2, CreatedAt: at})
			switch {
			case tt.wantIs != nil:
				if !errors.Is(err, tt.wantIs) {
					t.Fatalf("want %v, got %v", tt.wantIs, err)
				}
			case tt.wantMsg != "":
				if err == nil || !regexp.MustCompile(tt.wantMsg).MatchString(err.Error()) {
					t.Fatalf("want %q, got %v", tt.wantMsg, err)
				}
			default:
				if err != nil {
					t.Fatalf("Create error: %v", err)
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+followships\s+WHERE\s+follower_id\s*=\s*\$1\s+AND\s+following_id\s*=\s*\$2$`

	mock.ExpectExec(q).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(1), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs(int64(1), int64(4)).WillReturnError(errors.New("db err"))

	n, err := repo.Delete(context.Background(), 1, 2)
	if err != nil || n != 1 {
		t.Fatalf("Delete(1,2) = %d, %v", n, err)
	}
	n, err = repo.Delete(context.Background(), 1, 3)
	if err != nil || n != 0 {
		t.Fatalf("Delete(1,3) = %d, %v", n, err)
	}
	if _, err = repo.Delete(context.Background(), 1, 4); err == nil {
		t.Fatal("expected error")
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+EXISTS\s*\(.*follower_id\s*=\s*\$1\s+AND\s+following_id\s*=\s*\$2.*\)$`

	mock.ExpectQuery(q).WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), 1, 2)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}

func TestCount_BuildsFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.EdgeFilter
		q      string
		args   []any
	}{
		{
			name:   "by following",
			filter: models.EdgeFilter{FollowingID: 7},
			q:      `^SELECT COUNT\(\*\) FROM followships WHERE following_id = \$1$`,
			args:   []any{int64(7)},
		},
		{
			name:   "by follower",
			filter: models.EdgeFilter{FollowerID: 7},
			q:      `^SELECT COUNT\(\*\) FROM followships WHERE follower_id = \$1$`,
			args:   []any{int64(7)},
		},
		{
			name:   "both",
			filter: models.EdgeFilter{FollowerID: 1, FollowingID: 2},
			q:      `^SELECT COUNT\(\*\) FROM followships WHERE follower_id = \$1 AND following_id = \$2$`,
			args:   []any{int64(1), int64(2)},
		},
		{
			name: "all",
			q:    `^SELECT COUNT\(\*\) FROM followships$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectQuery(tt.q)
			if len(tt.args) > 0 {
				args := make([]driver.Value, 0, len(tt.args))
				for _, a := range tt.args {
					args = append(args, a)
				}
				exp.WithArgs(args...)
			}
			exp.WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

			n, err := repo.Count(context.Background(), tt.filter)
			if err != nil || n != 5 {
				t.Fatalf("Count = %d, %v", n, err)
			}
		})
	}
}

func TestFollowerAndFollowingIDs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT follower_id FROM followships WHERE following_id = \$1$`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"follower_id"}).AddRow(int64(2)).AddRow(int64(3)))
	mock.ExpectQuery(`^SELECT following_id FROM followships WHERE follower_id = \$1$`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}))

	followers, err := repo.FollowerIDs(context.Background(), 1)
	if err != nil || len(followers) != 2 || followers[0] != 2 || followers[1] != 3 {
		t.Fatalf("FollowerIDs = %v, %v", followers, err)
	}
	followings, err := repo.FollowingIDs(context.Background(), 1)
	if err != nil || len(followings) != 0 {
		t.Fatalf("FollowingIDs = %v, %v", followings, err)
	}
}

func TestListFollowers(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)JOIN\s+accounts\s+a\s+ON\s+a\.id\s*=\s*f\.follower_id\s+WHERE\s+f\.following_id\s*=\s*\$1\s+ORDER\s+BY\s+f\.created_at\s+DESC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "name", "avatar", "introduction", "created_at"}).
			AddRow(int64(3), "carol", "Carol", "", "hey", int64(2000)).
			AddRow(int64(2), "bob", "Bob", "", "", int64(1000)))

	got, err := repo.ListFollowers(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListFollowers error: %v", err)
	}
	if len(got) != 2 || got[0].AccountID != 3 || got[0].FollowedAt.UnixMilli() != 2000 || got[0].Introduction != "hey" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestListFollowings_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)ON\s+a\.id\s*=\s*f\.following_id`).WillReturnError(errors.New("db err"))

	if _, err := repo.ListFollowings(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestTopFollowed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)ORDER\s+BY\s+follower_count\s+DESC,\s*a\.id\s+ASC\s+LIMIT\s+\$1$`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account", "name", "avatar", "follower_count"}).
			AddRow(int64(2), "bob", "Bob", "b.png", int64(4)).
			AddRow(int64(1), "alice", "Alice", "", int64(0)))

	got, err := repo.TopFollowed(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopFollowed error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[0].FollowerCount != 4 || got[0].Avatar != "b.png" {
		t.Fatalf("unexpected summaries: %+v", got)
	}
}
