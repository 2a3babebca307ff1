package codes

import (
	"database/sql"
	"errors"

	"tecsoqr/internal/engine/payload"
)

var ErrNotFound = errors.New("code not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const codeColumns = `id, api_key_id, type, payload, format, size, margin, level,
		       foreground, background, client_os, client_browser, created_at, expires_at`

func (r *Repository) Create(c *Code) error {
	query := `
		INSERT INTO codes (
			id, api_key_id, type, payload, format, size, margin, level,
			foreground, background, client_os, client_browser, created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var apiKeyID sql.NullString
	if c.APIKeyID != "" {
		apiKeyID = sql.NullString{String: c.APIKeyID, Valid: true}
	}

	_, err := r.db.Exec(query,
		c.ID,
		apiKeyID,
		string(c.Type),
		c.Payload,
		c.Format,
		c.Size,
		c.Margin,
		c.Level,
		c.Foreground,
		c.Background,
		c.ClientOS,
		c.ClientBrowser,
		c.CreatedAt,
		c.ExpiresAt,
	)
	return err
}

func (r *Repository) GetByID(id string) (*Code, error) {
	row := r.db.QueryRow("SELECT "+codeColumns+" FROM codes WHERE id = ?", id)
	c, err := scanCode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *Repository) ExistsByID(id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM codes WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

func (r *Repository) ListByAPIKey(apiKeyID string, limit, offset int) ([]*Code, error) {
	query := "SELECT " + codeColumns + `
		FROM codes
		WHERE api_key_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, apiKeyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Code
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteExpired removes rows whose retention ended at or before now.
func (r *Repository) DeleteExpired(now int64) (int64, error) {
	res, err := r.db.Exec("DELETE FROM codes WHERE expires_at IS NOT NULL AND expires_at <= ?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCode(s interface {
	Scan(dest ...interface{}) error
}) (*Code, error) {
	var c Code
	var typ string
	var apiKeyID sql.NullString
	var expiresAt sql.NullInt64

	err := s.Scan(
		&c.ID,
		&apiKeyID,
		&typ,
		&c.Payload,
		&c.Format,
		&c.Size,
		&c.Margin,
		&c.Level,
		&c.Foreground,
		&c.Background,
		&c.ClientOS,
		&c.ClientBrowser,
		&c.CreatedAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	c.Type = payload.Type(typ)
	c.APIKeyID = apiKeyID.String
	if expiresAt.Valid {
		val := expiresAt.Int64
		c.ExpiresAt = &val
	}
	return &c, nil
}
