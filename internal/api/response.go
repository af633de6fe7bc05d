package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rewear-hq/rewear/internal/errs"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError maps store-layer sentinel errors to HTTP responses. Unknown
// errors are logged and hidden behind a generic 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrItemUnavailable),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrAlreadyExists):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInsufficientPoints):
		jsonError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		jsonError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("internal error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
