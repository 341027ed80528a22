package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-gateway/internal/middleware"
	"chat-gateway/internal/services"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.calls++
	return p.reply, p.err
}

func newTestHandler(provider *stubProvider, exposeDetail bool) *ChatHandler {
	gateway := services.NewChatGateway(provider, nil, time.Second, "gsk_secret")
	return NewChatHandler(gateway, 1<<10, exposeDetail)
}

func doChat(t *testing.T, h *ChatHandler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-test"))

	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	var payload map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rr, payload
}

func TestChatHandler_Success(t *testing.T) {
	provider := &stubProvider{reply: "Bonjour"}

	rr, payload := doChat(t, newTestHandler(provider, true), `{"message": "Olá"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}
	if len(payload) != 1 || payload["reply"] != "Bonjour" {
		t.Fatalf("expected exactly {\"reply\":\"Bonjour\"}, got %v", payload)
	}
}

func TestChatHandler_MissingMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty string", `{"message": ""}`},
		{"whitespace", `{"message": "   "}`},
		{"null", `{"message": null}`},
		{"number", `{"message": 42}`},
		{"object", `{"message": {"text": "hi"}}`},
		{"other key", `{"mensagem": "hi"}`},
		{"empty body", ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{reply: "unused"}

			rr, payload := doChat(t, newTestHandler(provider, true), tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if payload["error"] != "message is required" {
				t.Fatalf("unexpected error body: %v", payload)
			}
			if _, ok := payload["reply"]; ok {
				t.Fatal("reply must not be present on error")
			}
			if provider.calls != 0 {
				t.Fatalf("provider should not be invoked, got %d calls", provider.calls)
			}
		})
	}
}

func TestChatHandler_MalformedJSON(t *testing.T) {
	provider := &stubProvider{}

	rr, payload := doChat(t, newTestHandler(provider, true), `{"message": "hi"`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if payload["error"] != "invalid request body" {
		t.Fatalf("unexpected error body: %v", payload)
	}
	if provider.calls != 0 {
		t.Fatal("provider should not be invoked")
	}
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	body := `{"message": "` + strings.Repeat("a", 2<<10) + `"}`

	rr, payload := doChat(t, newTestHandler(&stubProvider{}, true), body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if payload["error"] != "request body too large" {
		t.Fatalf("unexpected error body: %v", payload)
	}
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("dial tcp 10.0.0.1:443: connection refused")}

	rr, payload := doChat(t, newTestHandler(provider, true), `{"message": "hi"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	msg, _ := payload["error"].(string)
	if !strings.HasPrefix(msg, "failed to generate reply: ") || !strings.Contains(msg, "connection refused") {
		t.Fatalf("unexpected error body: %v", payload)
	}
	if _, ok := payload["reply"]; ok {
		t.Fatal("reply must not be present on error")
	}
}

func TestChatHandler_ProviderFailureRedactsCredential(t *testing.T) {
	provider := &stubProvider{err: errors.New("401: invalid key gsk_secret")}

	_, payload := doChat(t, newTestHandler(provider, true), `{"message": "hi"}`)

	if msg, _ := payload["error"].(string); strings.Contains(msg, "gsk_secret") {
		t.Fatalf("credential leaked in response: %q", msg)
	}
}

func TestChatHandler_ProviderFailureWithoutDetail(t *testing.T) {
	provider := &stubProvider{err: errors.New("internal upstream trace")}

	rr, payload := doChat(t, newTestHandler(provider, false), `{"message": "hi"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if payload["error"] != "failed to generate reply" {
		t.Fatalf("unexpected error body: %v", payload)
	}
}

func TestChatHandler_DeterministicProviderIsIdempotent(t *testing.T) {
	h := newTestHandler(&stubProvider{reply: "same"}, true)

	first, a := doChat(t, h, `{"message": "ping"}`)
	second, b := doChat(t, h, `{"message": "ping"}`)

	if first.Code != second.Code || a["reply"] != b["reply"] {
		t.Fatalf("expected identical responses, got %d %v and %d %v", first.Code, a, second.Code, b)
	}
}
