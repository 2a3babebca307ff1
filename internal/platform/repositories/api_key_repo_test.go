package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tecsoqr/internal/platform/models"
)

func TestAPIKeyRepository_GetByHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAPIKeyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "key_prefix", "scopes", "created_at", "expires_at", "last_used_at", "revoked_at"}).
		AddRow("key_1", "ci", "tqr_live_abcd...", `["generate"]`, 1700000000, nil, 1700000100, nil)
	mock.ExpectQuery("SELECT (.+) FROM api_keys WHERE key_hash = ?").
		WithArgs("hash1").
		WillReturnRows(rows)

	k, err := repo.GetByHash("hash1")
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if k.ID != "key_1" || k.KeyHash != "hash1" || len(k.Scopes) != 1 || k.Scopes[0] != "generate" {
		t.Errorf("unexpected key %+v", k)
	}
	if k.ExpiresAt != nil || k.LastUsedAt == nil || *k.LastUsedAt != 1700000100 {
		t.Errorf("unexpected timestamps %+v", k)
	}

	mock.ExpectQuery("SELECT (.+) FROM api_keys WHERE key_hash = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByHash("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByHash() error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAPIKeyRepository_CreateAndRevoke(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAPIKeyRepository(db)

	mock.ExpectExec("INSERT INTO api_keys").
		WithArgs(sqlmock.AnyArg(), "ci", "h", "p", "[]", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	key := &models.APIKey{Name: "ci", KeyHash: "h", KeyPrefix: "p"}
	if err := repo.Create(key); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if key.ID == "" || key.CreatedAt == 0 {
		t.Errorf("Create() did not fill id/created_at: %+v", key)
	}

	mock.ExpectExec("UPDATE api_keys SET revoked_at").
		WithArgs(sqlmock.AnyArg(), key.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Revoke(key.ID); err != nil {
		t.Errorf("Revoke() error = %v", err)
	}

	mock.ExpectExec("UPDATE api_keys SET revoked_at").
		WithArgs(sqlmock.AnyArg(), "key_gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Revoke("key_gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Revoke() error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
