package analytics

import (
	"database/sql"
)

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CountByType groups generated codes for one API key since the unix time start.
func (r *Repository) CountByType(apiKeyID string, start int64) ([]TypeCount, error) {
	query := `
		SELECT type, COUNT(*)
		FROM codes
		WHERE api_key_id = ? AND created_at >= ?
		GROUP BY type
		ORDER BY COUNT(*) DESC, type
	`
	rows, err := r.db.Query(query, apiKeyID, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var c TypeCount
		if err := rows.Scan(&c.Type, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CountByDay(apiKeyID string, start int64) ([]DailyCount, error) {
	query := `
		SELECT date(created_at, 'unixepoch') AS day, COUNT(*)
		FROM codes
		WHERE api_key_id = ? AND created_at >= ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.Query(query, apiKeyID, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
