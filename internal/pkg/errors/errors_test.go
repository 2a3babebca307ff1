package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tecsoqr/internal/engine/bulk"
	"tecsoqr/internal/engine/codes"
	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
)

func TestClassify(t *testing.T) {
	_, missingErr := payload.Encode(payload.WiFi{Encryption: payload.EncryptionWPA})
	_, unsupportedErr := payload.ParseType("instagram")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing field", missingErr, http.StatusUnprocessableEntity, ErrCodeInvalidContent},
		{"unsupported type", unsupportedErr, http.StatusBadRequest, ErrCodeUnsupportedType},
		{"wrapped unsupported", fmt.Errorf("item 3: %w", unsupportedErr), http.StatusBadRequest, ErrCodeUnsupportedType},
		{"svg", render.ErrUnsupportedFormat, http.StatusNotImplemented, ErrCodeUnsupportedFormat},
		{"size", render.ErrInvalidSize, http.StatusBadRequest, ErrCodeInvalidInput},
		{"no bulk lines", bulk.ErrNoLines, http.StatusBadRequest, ErrCodeInvalidInput},
		{"not found", codes.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"other", stderrors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := Classify(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("Classify() = (%d, %s), want (%d, %s)", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestFromError_HidesInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	FromError(rr, stderrors.New("secret db path"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Errorf("body leaks internal error: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	_, err := payload.Encode(payload.Phone{})
	FromError(rr, err)
	body := rr.Body.String()
	if !strings.Contains(body, `"field":"number"`) || !strings.Contains(body, ErrCodeInvalidContent) {
		t.Errorf("body = %s", body)
	}
}
