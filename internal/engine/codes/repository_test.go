package codes

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tecsoqr/internal/engine/payload"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	query := `
	CREATE TABLE codes (
		id TEXT PRIMARY KEY,
		api_key_id TEXT,
		type TEXT NOT NULL,
		payload TEXT NOT NULL,
		format TEXT NOT NULL,
		size INTEGER NOT NULL,
		margin INTEGER NOT NULL,
		level TEXT NOT NULL,
		foreground TEXT NOT NULL,
		background TEXT NOT NULL,
		client_os TEXT NOT NULL DEFAULT '',
		client_browser TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		expires_at INTEGER
	);
	`
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	now := time.Now().Unix()
	exp := now + 60
	code := &Code{
		ID:         "qr_abcdefghij",
		APIKeyID:   "key_1",
		Type:       payload.TypeWiFi,
		Payload:    "WIFI:T:WPA;S:Home;P:secret;",
		Format:     "png",
		Size:       512,
		Margin:     4,
		Level:      "M",
		Foreground: "#000000",
		Background: "#ffffff",
		ClientOS:   "Linux",
		CreatedAt:  now,
		ExpiresAt:  &exp,
	}
	if err := repo.Create(code); err != nil {
		t.Fatalf("Failed to create code: %v", err)
	}

	fetched, err := repo.GetByID("qr_abcdefghij")
	if err != nil {
		t.Fatalf("Failed to get code: %v", err)
	}
	if fetched.Payload != code.Payload || fetched.Type != payload.TypeWiFi || fetched.APIKeyID != "key_1" {
		t.Errorf("Unexpected code %+v", fetched)
	}
	if fetched.ExpiresAt == nil || *fetched.ExpiresAt != exp {
		t.Errorf("Expected expires_at %d, got %v", exp, fetched.ExpiresAt)
	}

	exists, err := repo.ExistsByID("qr_abcdefghij")
	if err != nil || !exists {
		t.Errorf("ExistsByID() = %v, %v", exists, err)
	}

	if _, err := repo.GetByID("qr_missing000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ListAndPurge(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	past := int64(100)
	for i, c := range []*Code{
		{ID: "qr_aaaaaaaaaa", APIKeyID: "k", CreatedAt: 1, ExpiresAt: &past},
		{ID: "qr_bbbbbbbbbb", APIKeyID: "k", CreatedAt: 2},
		{ID: "qr_cccccccccc", CreatedAt: 3},
	} {
		c.Type, c.Payload, c.Format, c.Level = payload.TypeText, "x", "png", "M"
		if err := repo.Create(c); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	list, err := repo.ListByAPIKey("k", 10, 0)
	if err != nil {
		t.Fatalf("ListByAPIKey() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "qr_bbbbbbbbbb" {
		t.Errorf("Unexpected list %+v", list)
	}

	n, err := repo.DeleteExpired(200)
	if err != nil || n != 1 {
		t.Errorf("DeleteExpired() = %d, %v; want 1", n, err)
	}
}
