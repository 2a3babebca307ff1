package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"tecsoqr/internal/api/middleware"
	"tecsoqr/internal/engine/codes"
	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/pkg/json"
	"tecsoqr/internal/pkg/metrics"
	"tecsoqr/internal/platform/auth"
)

type QRHandler struct {
	codes     *codes.Service
	tokens    *auth.TokenService
	publicURL string
	maxBody   int64
	maxBatch  int
}

func NewQRHandler(codeSvc *codes.Service, tokens *auth.TokenService, publicURL string, maxBody int64, maxBatch int) *QRHandler {
	if maxBatch <= 0 {
		maxBatch = 100
	}
	return &QRHandler{
		codes:     codeSvc,
		tokens:    tokens,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		maxBody:   maxBody,
		maxBatch:  maxBatch,
	}
}

type generateRequest struct {
	Content       json.RawMessage      `json:"content"`
	Customization render.Customization `json:"customization"`
	Output        render.Output        `json:"output"`
}

type generateResponse struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Payload           string `json:"payload"`
	MimeType          string `json:"mime_type"`
	Image             string `json:"image"`
	DownloadURL       string `json:"download_url"`
	DownloadExpiresAt int64  `json:"download_expires_at"`
	ExpiresAt         *int64 `json:"expires_at,omitempty"`
}

type itemError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type batchResult struct {
	Index int `json:"index"`
	*generateResponse
	Error *itemError `json:"error,omitempty"`
}

func (h *QRHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, h.maxBody, &req) {
		return
	}

	resp, err := h.generate(r, &req)
	if err != nil {
		recordEncodeError(err)
		apiErrors.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Batch generates each item independently; one failing item does not fail
// the others.
func (h *QRHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []generateRequest `json:"items"`
	}
	if !decodeJSON(w, r, h.maxBody*int64(h.maxBatch), &req) {
		return
	}
	if len(req.Items) == 0 {
		apiErrors.WriteError(w, http.StatusBadRequest, apiErrors.ErrCodeInvalidInput, "items must not be empty", nil)
		return
	}
	if len(req.Items) > h.maxBatch {
		apiErrors.WriteError(w, http.StatusRequestEntityTooLarge, apiErrors.ErrCodePayloadTooLarge, "too many items", map[string]int{"max": h.maxBatch})
		return
	}

	results := make([]batchResult, len(req.Items))
	failed := 0
	for i := range req.Items {
		results[i].Index = i
		resp, err := h.generate(r, &req.Items[i])
		if err != nil {
			recordEncodeError(err)
			status, code, details := apiErrors.Classify(err)
			msg := err.Error()
			if status == http.StatusInternalServerError {
				log.Error().Err(err).Int("index", i).Msg("batch item failed")
				msg = "Internal server error"
			}
			results[i].Error = &itemError{Code: code, Message: msg, Details: details}
			failed++
			continue
		}
		results[i].generateResponse = resp
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results":   results,
		"succeeded": len(results) - failed,
		"failed":    failed,
	})
}

// Encode returns only the payload string, without rendering or history.
func (h *QRHandler) Encode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content json.RawMessage `json:"content"`
	}
	if !decodeJSON(w, r, h.maxBody, &req) {
		return
	}

	content, err := decodeContent(req.Content)
	if err != nil {
		apiErrors.FromError(w, err)
		return
	}
	p, err := payload.Encode(content)
	if err != nil {
		recordEncodeError(err)
		apiErrors.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"type": string(content.Type()), "payload": p})
}

// Validate is the advisory quick-entry check. An invalid input is a normal
// 200 response with valid=false.
func (h *QRHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type  string `json:"type"`
		Input string `json:"input"`
	}
	if !decodeJSON(w, r, h.maxBody, &req) {
		return
	}

	t := payload.Type(req.Type)
	valid := payload.IsValid(t, req.Input)
	resp := map[string]interface{}{
		"type":  req.Type,
		"valid": valid,
	}
	if valid {
		if content, err := payload.FromQuickEntry(t, req.Input); err == nil {
			if p, err := payload.Encode(content); err == nil {
				resp["payload"] = p
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *QRHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": payload.Templates()})
}

func (h *QRHandler) generate(r *http.Request, req *generateRequest) (*generateResponse, error) {
	content, err := decodeContent(req.Content)
	if err != nil {
		return nil, err
	}

	var apiKeyID string
	if key := middleware.APIKeyFrom(r.Context()); key != nil {
		apiKeyID = key.ID
	}

	res, err := h.codes.Generate(&codes.GenerateRequest{
		Content:       content,
		Customization: req.Customization,
		Output:        req.Output,
		APIKeyID:      apiKeyID,
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		return nil, err
	}
	metrics.CodesGenerated.WithLabelValues(string(res.Code.Type)).Inc()

	token, exp, err := h.tokens.GenerateDownloadToken(res.Code.ID)
	if err != nil {
		return nil, err
	}

	return &generateResponse{
		ID:                res.Code.ID,
		Type:              string(res.Code.Type),
		Payload:           res.Code.Payload,
		MimeType:          "image/png",
		Image:             base64.StdEncoding.EncodeToString(res.Image),
		DownloadURL:       h.publicURL + "/download/" + token,
		DownloadExpiresAt: exp.Unix(),
		ExpiresAt:         res.Code.ExpiresAt,
	}, nil
}

func decodeContent(raw json.RawMessage) (payload.Content, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &payload.UnsupportedTypeError{}
	}
	return payload.Decode(raw)
}

func recordEncodeError(err error) {
	_, code, _ := apiErrors.Classify(err)
	metrics.EncodeErrors.WithLabelValues(code).Inc()
}
