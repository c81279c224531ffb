package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// messageResponse is the plain success envelope.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorResponse is the uniform JSON envelope for failed requests. The raw
// error is only exposed in development mode.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Message: message}

	if err != nil {
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg(message)
		}
		if h.cfg.IsDevelopment() {
			resp.Error = err.Error()
		}
	}

	h.writeJSON(w, status, resp)
}

func (h *Handler) writeInternalError(w http.ResponseWriter, err error) {
	h.writeError(w, http.StatusInternalServerError, "something went wrong", err)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
