package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"chat-gateway/internal/middleware"
	"chat-gateway/internal/models"
)

type chatGateway interface {
	Reply(ctx context.Context, requestID, message string) (string, error)
}

type ChatHandler struct {
	gateway      chatGateway
	maxBodyBytes int64
	exposeDetail bool
}

func NewChatHandler(gateway chatGateway, maxBodyBytes int64, exposeDetail bool) *ChatHandler {
	return &ChatHandler{
		gateway:      gateway,
		maxBodyBytes: maxBodyBytes,
		exposeDetail: exposeDetail,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		var sizeErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF), errors.As(err, &typeErr):
			// Empty body or a non-string message
			writeJSON(w, http.StatusBadRequest, errorResp(msgMessageRequired))
		case errors.As(err, &sizeErr):
			writeJSON(w, http.StatusBadRequest, errorResp(msgBodyTooLarge))
		default:
			writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidBody))
		}
		return
	}

	reply, err := h.gateway.Reply(r.Context(), middleware.GetRequestID(r.Context()), req.Message)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}
