package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "tecsoqr/internal/api/context"
	"tecsoqr/internal/api/handlers"
	"tecsoqr/internal/api/middleware"
	apiErrors "tecsoqr/internal/pkg/errors"
)

type Dependencies struct {
	QRHandler        *handlers.QRHandler
	BulkHandler      *handlers.BulkHandler
	CodeHandler      *handlers.CodeHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	APIKeyHandler    *handlers.APIKeyHandler
	AuditHandler     *handlers.AuditHandler
	HealthHandler    *handlers.HealthHandler
	MetricsHandler   *handlers.MetricsHandler
	AuthMiddleware   *middleware.AuthMiddleware
	AdminMiddleware  *middleware.AdminMiddleware
	RateLimiter      *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, http.StatusNotFound, apiErrors.ErrCodeNotFound, "Route not found", nil)
	})

	authMid := deps.AuthMiddleware
	admin := deps.AdminMiddleware.Handle
	limit := deps.RateLimiter.Limit

	// Public
	router.GET("/health", chain("health", deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))
	router.GET("/download/:token", chain("download", deps.CodeHandler.Download, limit(middleware.LimitRead)))

	// Content encoding and rendering
	router.POST("/api/v1/generate",
		chain("generate", deps.QRHandler.Generate, authMid.Handle, middleware.RequireScope("generate"), limit(middleware.LimitGenerate)))
	router.POST("/api/v1/batch",
		chain("batch", deps.QRHandler.Batch, authMid.Handle, middleware.RequireScope("generate"), limit(middleware.LimitBulk)))
	router.POST("/api/v1/bulk",
		chain("bulk", deps.BulkHandler.Create, authMid.Handle, middleware.RequireScope("generate"), limit(middleware.LimitBulk)))
	router.POST("/api/v1/encode",
		chain("encode", deps.QRHandler.Encode, authMid.Handle, limit(middleware.LimitRead)))
	router.POST("/api/v1/validate",
		chain("validate", deps.QRHandler.Validate, authMid.Handle, limit(middleware.LimitRead)))
	router.GET("/api/v1/templates",
		chain("templates", deps.QRHandler.Templates, authMid.Handle, limit(middleware.LimitRead)))

	// History and usage
	router.GET("/api/v1/codes",
		chain("codes_list", deps.CodeHandler.List, authMid.Require, limit(middleware.LimitRead)))
	router.GET("/api/v1/codes/:code_id",
		chain("codes_get", deps.CodeHandler.Get, authMid.Handle, limit(middleware.LimitRead)))
	router.GET("/api/v1/analytics",
		chain("analytics", deps.AnalyticsHandler.Usage, authMid.Require, middleware.RequireScope("analytics"), limit(middleware.LimitRead)))

	// Key management
	router.POST("/api/v1/keys", chain("keys_create", deps.APIKeyHandler.Create, admin))
	router.GET("/api/v1/keys", chain("keys_list", deps.APIKeyHandler.List, admin))
	router.DELETE("/api/v1/keys/:key_id", chain("keys_revoke", deps.APIKeyHandler.Revoke, admin))
	router.GET("/api/v1/audit", chain("audit", deps.AuditHandler.List, admin))

	return router
}

// chain applies request logging first, then middlewares in order.
func chain(route string, handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(middleware.Logging(route)(handler))
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
