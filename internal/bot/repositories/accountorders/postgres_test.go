package accountorders

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eosbot/internal/bot/models"
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

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+account_orders\s*\(user_id,\s*eos_account_name,\s*eos_public_key,\s*eos_private_key,\s*activated\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*FALSE\)\s*RETURNING\s+order_id\s*$`
	rows := sqlmock.NewRows([]string{"order_id"}).AddRow(int64(3))
	mock.ExpectQuery(q).
		WithArgs(int64(7), "newname12345", "EOS7abc...", "ct").
		WillReturnRows(rows)

	order := &models.AccountOrder{UserID: 7, AccountName: "newname12345", PublicKey: "EOS7abc...", EncryptedPrivateKey: "ct"}
	got, err := repo.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.OrderID != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetPendingByUser_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+order_id,.*FROM\s+account_orders\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+NOT\s+activated\s*$`
	rows := sqlmock.NewRows([]string{"order_id", "user_id", "eos_account_name", "eos_public_key", "eos_private_key", "activated"}).
		AddRow(int64(3), int64(7), "newname12345", "EOS7abc...", "ct", false)
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(rows)

	got, err := repo.GetPendingByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPendingByUser error: %v", err)
	}
	if got.OrderID != 3 || got.Activated {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetPendingByUser_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+order_id,.*AND\s+NOT\s+activated\s*$`
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPendingByUser(context.Background(), 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestMarkActivated(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+account_orders\s+SET\s+activated\s*=\s*TRUE\s+WHERE\s+order_id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkActivated(context.Background(), 3); err != nil {
		t.Fatalf("MarkActivated error: %v", err)
	}
}

func TestDeletePendingByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+account_orders\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+NOT\s+activated\s*$`
	mock.ExpectExec(q).WithArgs(int64(7)).WillReturnError(errors.New("db down"))

	err := repo.DeletePendingByUser(context.Background(), 7)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
