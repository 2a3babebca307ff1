package errors

import (
	stderrors "errors"
	"net/http"

	"tecsoqr/internal/engine/analytics"
	"tecsoqr/internal/engine/bulk"
	"tecsoqr/internal/engine/codes"
	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
	"tecsoqr/internal/pkg/json"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidContent    = "INVALID_CONTENT"
	ErrCodeUnsupportedType   = "UNSUPPORTED_TYPE"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
		Details: details,
	})
}

// FieldDetails names the offending field of a content error.
type FieldDetails struct {
	Type  string `json:"type"`
	Field string `json:"field"`
}

// Classify maps engine errors onto an HTTP status and error code. Unknown
// errors are internal.
func Classify(err error) (status int, code string, details interface{}) {
	var fe *payload.FieldError
	var ute *payload.UnsupportedTypeError

	switch {
	case stderrors.As(err, &ute):
		return http.StatusBadRequest, ErrCodeUnsupportedType, map[string]string{"type": ute.Type}
	case stderrors.As(err, &fe):
		return http.StatusUnprocessableEntity, ErrCodeInvalidContent, FieldDetails{Type: string(fe.Type), Field: fe.Field}
	case stderrors.Is(err, payload.ErrEmptyPayload):
		return http.StatusUnprocessableEntity, ErrCodeInvalidContent, nil
	case stderrors.Is(err, render.ErrUnsupportedFormat):
		return http.StatusNotImplemented, ErrCodeUnsupportedFormat, nil
	case stderrors.Is(err, render.ErrInvalidSize),
		stderrors.Is(err, render.ErrInvalidOption),
		stderrors.Is(err, analytics.ErrInvalidPeriod),
		stderrors.Is(err, bulk.ErrNoLines):
		return http.StatusBadRequest, ErrCodeInvalidInput, nil
	case stderrors.Is(err, codes.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, nil
	}
	return http.StatusInternalServerError, ErrCodeInternal, nil
}

// FromError writes the classified envelope. Internal errors hide their text.
func FromError(w http.ResponseWriter, err error) {
	status, code, details := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	WriteError(w, status, code, msg, details)
}
