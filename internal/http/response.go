package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"navexa/internal/core"
	"navexa/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the standard headers. Encoding failures at
// this point can only be logged; the status line is already gone.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto status codes: validation failures
// are 422, missing records 404, everything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case isValidationError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err, "method", r.Method, "path", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidAmount,
		core.ErrVehicleRequired,
		core.ErrCustomerRequired,
		core.ErrIncomeRequired,
		core.ErrNegativeAmount,
		core.ErrRegistrationRequired,
		core.ErrModelRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeDecodeError separates malformed JSON (400) from a well-formed body
// carrying an unparseable money string, which is a validation failure (422)
// like any other bad amount.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
}

// decodeJSON parses the request body into v, rejecting unknown fields so
// client typos fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
