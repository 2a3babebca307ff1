package handlers

import (
	"net/http"

	"tecsoqr/internal/api/middleware"
	"tecsoqr/internal/engine/analytics"
	apiErrors "tecsoqr/internal/pkg/errors"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Usage(w http.ResponseWriter, r *http.Request) {
	key := middleware.APIKeyFrom(r.Context())
	if key == nil {
		apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "API key required", nil)
		return
	}

	summary, err := h.service.Usage(key.ID, r.URL.Query().Get("period"))
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
