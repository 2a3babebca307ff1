package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/platform/audit"
	"tecsoqr/internal/platform/auth"
	"tecsoqr/internal/platform/models"
	"tecsoqr/internal/platform/repositories"
)

type APIKeyHandler struct {
	repo  *repositories.APIKeyRepository
	audit *audit.Logger
}

func NewAPIKeyHandler(repo *repositories.APIKeyRepository, auditLogger *audit.Logger) *APIKeyHandler {
	return &APIKeyHandler{repo: repo, audit: auditLogger}
}

func (h *APIKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string   `json:"name"`
		Scopes        []string `json:"scopes"`
		ExpiresInDays int      `json:"expires_in_days"`
	}
	if !decodeJSON(w, r, 0, &req) {
		return
	}
	if req.Name == "" {
		apiErrors.WriteError(w, http.StatusBadRequest, apiErrors.ErrCodeInvalidInput, "name is required", nil)
		return
	}

	rawKey, keyHash, keyPrefix := auth.NewAPIKey()
	apiKey := &models.APIKey{
		Name:      req.Name,
		KeyHash:   keyHash,
		KeyPrefix: keyPrefix,
		Scopes:    req.Scopes,
	}
	if req.ExpiresInDays > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresInDays) * 24 * time.Hour).Unix()
		apiKey.ExpiresAt = &exp
	}

	if err := h.repo.Create(apiKey); err != nil {
		log.Error().Err(err).Msg("failed to create api key")
		apiErrors.FromError(w, err)
		return
	}
	h.audit.Log(r, "admin", audit.ActionKeyCreate, "api_key", apiKey.ID, map[string]interface{}{"name": apiKey.Name})

	// The raw key is returned only once.
	writeJSON(w, http.StatusCreated, struct {
		ID        string   `json:"id"`
		Key       string   `json:"key"`
		Name      string   `json:"name"`
		Scopes    []string `json:"scopes"`
		ExpiresAt *int64   `json:"expires_at,omitempty"`
		CreatedAt int64    `json:"created_at"`
	}{
		ID:        apiKey.ID,
		Key:       rawKey,
		Name:      apiKey.Name,
		Scopes:    apiKey.Scopes,
		ExpiresAt: apiKey.ExpiresAt,
		CreatedAt: apiKey.CreatedAt,
	})
}

func (h *APIKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.repo.List()
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"keys": keys})
}

func (h *APIKeyHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	keyID := param(r, "key_id")
	if err := h.repo.Revoke(keyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			apiErrors.WriteError(w, http.StatusNotFound, apiErrors.ErrCodeNotFound, "API key not found", nil)
			return
		}
		apiErrors.FromError(w, err)
		return
	}
	h.audit.Log(r, "admin", audit.ActionKeyRevoke, "api_key", keyID, nil)

	w.WriteHeader(http.StatusNoContent)
}
