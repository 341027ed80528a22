package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chat-gateway/internal/models"
	"chat-gateway/internal/services"
)

const (
	msgMessageRequired = "message is required"
	msgInvalidBody     = "invalid request body"
	msgBodyTooLarge    = "request body too large"
	msgReplyFailed     = "failed to generate reply"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// handleServiceError maps gateway errors to a status code and error body.
// exposeDetail controls whether the sanitized provider message is appended.
func handleServiceError(w http.ResponseWriter, err error, exposeDetail bool) {
	var missing *services.MissingInputError
	var provider *services.ProviderError

	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResp(missing.Error()))
	case errors.As(err, &provider):
		msg := msgReplyFailed
		if exposeDetail && provider.Message != "" {
			msg += ": " + provider.Message
		}
		writeJSON(w, http.StatusInternalServerError, errorResp(msg))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("an unexpected error occurred"))
	}
}
