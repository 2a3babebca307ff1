package handlers

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog/log"

	"tecsoqr/internal/engine/bulk"
	"tecsoqr/internal/engine/render"
	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/pkg/metrics"
)

type BulkHandler struct {
	concurrency int
	maxBody     int64
}

func NewBulkHandler(concurrency int, maxBody int64) *BulkHandler {
	return &BulkHandler{concurrency: concurrency, maxBody: maxBody}
}

// Create turns a newline separated list into a ZIP of PNG codes.
func (h *BulkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text          string                `json:"text"`
		Customization *render.Customization `json:"customization"`
	}
	if !decodeJSON(w, r, h.maxBody, &req) {
		return
	}

	opts := bulk.DefaultOptions()
	if h.concurrency > 0 {
		opts.Concurrency = h.concurrency
	}
	if req.Customization != nil {
		opts.Customization = req.Customization.WithDefaults()
	}

	var buf bytes.Buffer
	n, err := bulk.Build(r.Context(), &buf, req.Text, opts)
	if err != nil {
		recordEncodeError(err)
		apiErrors.FromError(w, err)
		return
	}
	metrics.BulkItems.Add(float64(n))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="qr-codes.zip"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warn().Err(err).Msg("failed to write bulk archive")
	}
}
