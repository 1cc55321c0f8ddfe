package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eosbot/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestEnsure(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(user_id\)\s*VALUES\s*\(\$1\)\s*ON\s+CONFLICT\s*\(user_id\)\s+DO\s+NOTHING\s*$`
	mock.ExpectExec(q).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Ensure(context.Background(), 7); err != nil {
		t.Fatalf("Ensure error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,\s*eos_account_name,.*FROM\s+users\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	rows := sqlmock.NewRows([]string{"user_id", "eos_account_name", "eos_public_key", "eos_private_key", "permission_name", "session_expiration"}).
		AddRow(int64(7), "alice12345xy", "EOS6MRy...", "ciphertext", "active", time.Now())
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.UserID != 7 || !got.HasAccount() || got.AccountName.String != "alice12345xy" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NullCredential(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,.*WHERE\s+user_id\s*=\s*\$1\s*$`
	rows := sqlmock.NewRows([]string{"user_id", "eos_account_name", "eos_public_key", "eos_private_key", "permission_name", "session_expiration"}).
		AddRow(int64(8), nil, nil, nil, nil, nil)
	mock.ExpectQuery(q).WithArgs(int64(8)).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 8)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.HasAccount() {
		t.Fatalf("user with NULL columns must not report an account: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,.*WHERE\s+user_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetCredential(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+eos_account_name\s*=\s*\$1,\s*eos_public_key\s*=\s*\$2,\s*eos_private_key\s*=\s*\$3,\s*permission_name\s*=\s*\$4\s+WHERE\s+user_id\s*=\s*\$5\s*$`
	mock.ExpectExec(q).
		WithArgs("alice12345xy", "EOS6MRy...", "ct", "active", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetCredential(context.Background(), 7, "alice12345xy", "EOS6MRy...", "ct", "active"); err != nil {
		t.Fatalf("SetCredential error: %v", err)
	}
}

func TestClearCredential(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+eos_account_name\s*=\s*NULL,.*session_expiration\s*=\s*NULL\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ClearCredential(context.Background(), 7); err != nil {
		t.Fatalf("ClearCredential error: %v", err)
	}
}

func TestSetSessionExpiration_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+session_expiration\s*=\s*\$1\s+WHERE\s+user_id\s*=\s*\$2\s*$`
	mock.ExpectExec(q).WillReturnError(errors.New("db down"))

	err := repo.SetSessionExpiration(context.Background(), 7, time.Now())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
