package handlers

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "tecsoqr/internal/api/context"
	apiErrors "tecsoqr/internal/pkg/errors"
	"tecsoqr/internal/pkg/json"
)

const defaultMaxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a size-limited JSON body into v, writing the error
// response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v interface{}) bool {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErrors.WriteError(w, http.StatusRequestEntityTooLarge, apiErrors.ErrCodePayloadTooLarge, "Request body too large", nil)
			return false
		}
		apiErrors.WriteError(w, http.StatusBadRequest, apiErrors.ErrCodeInvalidInput, "Invalid request body", nil)
		return false
	}
	return true
}

func param(r *http.Request, name string) string {
	params, _ := r.Context().Value(apiContext.Params).(httprouter.Params)
	return params.ByName(name)
}
