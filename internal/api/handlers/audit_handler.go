package handlers

import (
	"net/http"
	"strconv"

	"tecsoqr/internal/platform/audit"
	apiErrors "tecsoqr/internal/pkg/errors"
)

type AuditHandler struct {
	audit *audit.Logger
}

func NewAuditHandler(auditLogger *audit.Logger) *AuditHandler {
	return &AuditHandler{audit: auditLogger}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	logs, err := h.audit.List(limit)
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
