package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"tecsoqr/internal/engine/render"
)

type HealthHandler struct {
	probes []probe
}

type probe struct {
	name string
	run  func(ctx context.Context) error
}

// NewHealthHandler probes the database and a small test render.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{probes: []probe{
		{"database", db.PingContext},
		{"renderer", func(context.Context) error {
			_, err := render.PNG("health", render.MinSize)
			return err
		}},
	}}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	checks := make(map[string]string, len(h.probes))
	for _, p := range h.probes {
		if err := p.run(ctx); err != nil {
			checks[p.name] = "unhealthy: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[p.name] = "healthy"
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}
