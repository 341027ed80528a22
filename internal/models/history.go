package models

import "time"

// RecordID identifies a stored history entry. Its format depends on the backend.
type RecordID string

// HistoryEntry is one answered chat exchange.
type HistoryEntry struct {
	RequestID   string    `json:"request_id,omitempty"`
	UserMessage string    `json:"user_message"`
	BotMessage  string    `json:"bot_message"`
	CreatedAt   time.Time `json:"created_at"`
}
