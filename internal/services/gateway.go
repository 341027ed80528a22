package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chat-gateway/internal/models"
)

// ChatGateway validates a chat message, asks the completion provider for a
// reply and optionally hands the exchange to the history recorder.
type ChatGateway struct {
	provider CompletionProvider
	history  *HistoryRecorder
	timeout  time.Duration
	secrets  []string
	now      func() time.Time
}

// NewChatGateway builds a gateway. history may be nil. secrets are redacted
// from provider errors before they leave the service.
func NewChatGateway(provider CompletionProvider, history *HistoryRecorder, timeout time.Duration, secrets ...string) *ChatGateway {
	return &ChatGateway{
		provider: provider,
		history:  history,
		timeout:  timeout,
		secrets:  secrets,
		now:      time.Now,
	}
}

// Reply returns the provider's completion for message. Errors are either
// *MissingInputError or *ProviderError.
func (g *ChatGateway) Reply(ctx context.Context, requestID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &MissingInputError{Field: "message"}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	reply, err := g.provider.Complete(ctx, message)
	if err != nil {
		log.Printf("chat %s: provider call failed: %s", requestID, sanitizeProviderMessage(err, g.secrets...))
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ProviderError{
				Message: fmt.Sprintf("provider did not respond within %s", g.timeout),
				Err:     err,
			}
		}
		return "", &ProviderError{Message: sanitizeProviderMessage(err, g.secrets...), Err: err}
	}

	if g.history != nil {
		g.history.Enqueue(models.HistoryEntry{
			RequestID:   requestID,
			UserMessage: message,
			BotMessage:  reply,
			CreatedAt:   g.now(),
		})
	}

	return reply, nil
}
