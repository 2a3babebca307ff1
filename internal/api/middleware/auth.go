package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apiContext "tecsoqr/internal/api/context"
	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/platform/auth"
	"tecsoqr/internal/platform/models"
	"tecsoqr/internal/platform/repositories"
)

// KeyStore is the subset of the API key repository the middleware needs.
type KeyStore interface {
	GetByHash(hash string) (*models.APIKey, error)
	UpdateLastUsed(id string) error
}

type AuthMiddleware struct {
	keys     KeyStore
	required bool
}

// NewAuthMiddleware checks Bearer API keys. When required is false,
// requests without an Authorization header pass through anonymously.
func NewAuthMiddleware(keys KeyStore, required bool) *AuthMiddleware {
	return &AuthMiddleware{keys: keys, required: required}
}

func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return m.handle(next, m.required)
}

// Require always demands a valid key.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return m.handle(next, true)
}

func (m *AuthMiddleware) handle(next http.HandlerFunc, required bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if required {
				apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "Missing authorization header", nil)
				return
			}
			next(w, r)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "Invalid authorization header format", nil)
			return
		}

		key, err := m.keys.GetByHash(auth.HashAPIKey(parts[1]))
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				log.Error().Err(err).Msg("api key lookup failed")
			}
			apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "Invalid API key", nil)
			return
		}
		if !key.Active(time.Now().Unix()) {
			apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "API key revoked or expired", nil)
			return
		}

		go func(id string) {
			if err := m.keys.UpdateLastUsed(id); err != nil {
				log.Warn().Err(err).Str("key_id", id).Msg("failed to update api key last use")
			}
		}(key.ID)

		ctx := context.WithValue(r.Context(), apiContext.APIKey, key)
		next(w, r.WithContext(ctx))
	}
}

// APIKeyFrom returns the authenticated key, or nil for anonymous requests.
func APIKeyFrom(ctx context.Context) *models.APIKey {
	key, _ := ctx.Value(apiContext.APIKey).(*models.APIKey)
	return key
}

// RequireScope rejects authenticated keys lacking scope.
func RequireScope(scope string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if key := APIKeyFrom(r.Context()); key != nil && !key.HasScope(scope) {
				apiErrors.WriteError(w, http.StatusForbidden, apiErrors.ErrCodeForbidden, "API key lacks scope "+scope, nil)
				return
			}
			next(w, r)
		}
	}
}

// AdminMiddleware guards key management with the X-Admin-Key header.
type AdminMiddleware struct {
	hash string
}

func NewAdminMiddleware(bcryptHash string) *AdminMiddleware {
	return &AdminMiddleware{hash: bcryptHash}
}

func (m *AdminMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.CheckAdminKey(m.hash, r.Header.Get("X-Admin-Key")) {
			apiErrors.WriteError(w, http.StatusUnauthorized, apiErrors.ErrCodeUnauthorized, "Invalid admin key", nil)
			return
		}
		next(w, r)
	}
}
