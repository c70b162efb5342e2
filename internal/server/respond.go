package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message, Success: false})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// failWith writes err as a response. Client errors echo the error text;
// server errors log it and send publicMsg instead.
func failWith(w http.ResponseWriter, r *http.Request, err error, publicMsg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r).Error(publicMsg, "error", err, "path", r.URL.Path)
		writeError(w, status, publicMsg)
		return
	}
	loggerFrom(r).Debug("request rejected", "status", status, "error", err, "path", r.URL.Path)
	writeError(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into dst. Malformed bodies
// wrap domain.ErrInvalidInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
