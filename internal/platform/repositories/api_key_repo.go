package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"tecsoqr/internal/pkg/json"
	"tecsoqr/internal/platform/models"
)

var ErrNotFound = errors.New("not found")

type APIKeyRepository struct {
	db *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Create(key *models.APIKey) error {
	if key.ID == "" {
		key.ID = "key_" + uuid.New().String()
	}
	key.CreatedAt = time.Now().Unix()
	if key.Scopes == nil {
		key.Scopes = []string{}
	}

	scopesJSON, err := json.Marshal(key.Scopes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO api_keys (id, name, key_hash, key_prefix, scopes, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, key.ID, key.Name, key.KeyHash, key.KeyPrefix, string(scopesJSON), key.CreatedAt, key.ExpiresAt)
	return err
}

const apiKeyColumns = `id, name, key_prefix, scopes, created_at, expires_at, last_used_at, revoked_at`

func (r *APIKeyRepository) GetByHash(hash string) (*models.APIKey, error) {
	row := r.db.QueryRow(`SELECT `+apiKeyColumns+` FROM api_keys WHERE key_hash = ?`, hash)
	k, err := scanAPIKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	k.KeyHash = hash
	return k, nil
}

func (r *APIKeyRepository) List() ([]*models.APIKey, error) {
	rows, err := r.db.Query(`SELECT ` + apiKeyColumns + ` FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []*models.APIKey{}
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepository) Revoke(id string) error {
	res, err := r.db.Exec(`UPDATE api_keys SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *APIKeyRepository) UpdateLastUsed(id string) error {
	_, err := r.db.Exec(`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, time.Now().Unix(), id)
	return err
}

func scanAPIKey(s interface {
	Scan(dest ...interface{}) error
}) (*models.APIKey, error) {
	var k models.APIKey
	var scopesStr string
	var expiresAt, lastUsedAt, revokedAt sql.NullInt64

	if err := s.Scan(&k.ID, &k.Name, &k.KeyPrefix, &scopesStr, &k.CreatedAt, &expiresAt, &lastUsedAt, &revokedAt); err != nil {
		return nil, err
	}

	k.ExpiresAt = nullInt(expiresAt)
	k.LastUsedAt = nullInt(lastUsedAt)
	k.RevokedAt = nullInt(revokedAt)
	if err := json.Unmarshal([]byte(scopesStr), &k.Scopes); err != nil {
		k.Scopes = []string{}
	}
	return &k, nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	val := v.Int64
	return &val
}
