package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-gateway/internal/services"
)

// ─── JSON Response Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"reply": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["reply"] != "ok" {
		t.Errorf("Expected reply 'ok', got %v", result["reply"])
	}
}

// ─── Error Mapping Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		exposeDetail bool
		wantStatus   int
		wantError    string
	}{
		{"missing input", &services.MissingInputError{Field: "message"}, true, http.StatusBadRequest, "message is required"},
		{"provider with detail", &services.ProviderError{Message: "rate limited"}, true, http.StatusInternalServerError, "failed to generate reply: rate limited"},
		{"provider without detail", &services.ProviderError{Message: "rate limited"}, false, http.StatusInternalServerError, "failed to generate reply"},
		{"wrapped provider error", fmt.Errorf("chat: %w", &services.ProviderError{Message: "boom"}), true, http.StatusInternalServerError, "failed to generate reply: boom"},
		{"unknown error", errors.New("???"), true, http.StatusInternalServerError, "an unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			handleServiceError(rr, tc.err, tc.exposeDetail)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["error"] != tc.wantError {
				t.Errorf("Expected error %q, got %q", tc.wantError, body["error"])
			}
		})
	}
}
