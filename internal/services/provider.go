package services

import (
	"context"
	"strings"
)

// CompletionProvider turns a single-turn prompt into generated text.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const maxProviderMessageLen = 300

// sanitizeProviderMessage strips the credential from an upstream error text,
// flattens it to one line and caps its length.
func sanitizeProviderMessage(err error, secrets ...string) string {
	msg := err.Error()
	for _, s := range secrets {
		if s != "" {
			msg = strings.ReplaceAll(msg, s, "[redacted]")
		}
	}
	msg = strings.Join(strings.Fields(msg), " ")
	if r := []rune(msg); len(r) > maxProviderMessageLen {
		msg = string(r[:maxProviderMessageLen]) + "..."
	}
	return msg
}
