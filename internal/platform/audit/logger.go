package audit

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tecsoqr/internal/pkg/json"
	"tecsoqr/internal/platform/models"
)

const (
	ActionKeyCreate = "api_key.create"
	ActionKeyRevoke = "api_key.revoke"
)

type Logger struct {
	db *sql.DB
	wg sync.WaitGroup
}

func NewLogger(db *sql.DB) *Logger {
	return &Logger{db: db}
}

// Log records an action without blocking the request.
func (l *Logger) Log(r *http.Request, actor, action, resourceType, resourceID string, metadata map[string]interface{}) {
	entry := &models.AuditLog{
		ID:           "audit_" + uuid.New().String(),
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		IPAddress:    "unknown",
		UserAgent:    "unknown",
		CreatedAt:    time.Now().Unix(),
	}
	if r != nil {
		entry.IPAddress = r.RemoteAddr
		entry.UserAgent = r.UserAgent()
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.insert(entry); err != nil {
			log.Error().Err(err).Str("action", action).Msg("failed to write audit log")
		}
	}()
}

// Wait blocks until pending writes finish.
func (l *Logger) Wait() {
	l.wg.Wait()
}

func (l *Logger) insert(e *models.AuditLog) error {
	metaJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO audit_logs (id, actor, action, resource_type, resource_id, metadata, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = l.db.Exec(query, e.ID, e.Actor, e.Action, e.ResourceType, e.ResourceID, string(metaJSON), e.IPAddress, e.UserAgent, e.CreatedAt)
	return err
}

func (l *Logger) List(limit int) ([]*models.AuditLog, error) {
	query := `SELECT id, actor, action, resource_type, resource_id, metadata, ip_address, user_agent, created_at FROM audit_logs ORDER BY created_at DESC LIMIT ?`
	rows, err := l.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.AuditLog{}
	for rows.Next() {
		var e models.AuditLog
		var metaStr, ip, ua sql.NullString
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.ResourceType, &e.ResourceID, &metaStr, &ip, &ua, &e.CreatedAt); err != nil {
			return nil, err
		}
		if metaStr.Valid {
			json.Unmarshal([]byte(metaStr.String), &e.Metadata)
		}
		e.IPAddress = ip.String
		e.UserAgent = ua.String
		logs = append(logs, &e)
	}
	return logs, rows.Err()
}
