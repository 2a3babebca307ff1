package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"tecsoqr/internal/api/middleware"
	"tecsoqr/internal/engine/codes"
	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/platform/auth"
)

type CodeHandler struct {
	codes  *codes.Service
	tokens *auth.TokenService
}

func NewCodeHandler(codeSvc *codes.Service, tokens *auth.TokenService) *CodeHandler {
	return &CodeHandler{codes: codeSvc, tokens: tokens}
}

// Get returns a history entry. Codes created with an API key are visible
// only to that key.
func (h *CodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := h.codes.Get(param(r, "code_id"))
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}

	if code.APIKeyID != "" {
		key := middleware.APIKeyFrom(r.Context())
		if key == nil || key.ID != code.APIKeyID {
			apiErrors.FromError(w, codes.ErrNotFound)
			return
		}
	}

	writeJSON(w, http.StatusOK, code)
}

func (h *CodeHandler) List(w http.ResponseWriter, r *http.Request) {
	key := middleware.APIKeyFrom(r.Context())
	if key == nil {
		apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "API key required", nil)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	list, err := h.codes.List(key.ID, limit, (page-1)*limit)
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}
	if list == nil {
		list = []*codes.Code{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"codes": list, "page": page, "limit": limit})
}

// Download serves a stored code's PNG for a signed token; no API key needed.
func (h *CodeHandler) Download(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.ValidateDownloadToken(param(r, "token"))
	if err != nil {
		apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "Invalid or expired download link", nil)
		return
	}

	code, img, err := h.codes.Image(claims.CodeID)
	if err != nil {
		if !errors.Is(err, codes.ErrNotFound) {
			log.Error().Err(err).Str("code_id", claims.CodeID).Msg("download render failed")
		}
		apiErrors.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+code.ID+`.png"`)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
