package services

// MissingInputError is returned when the chat message is absent or blank.
type MissingInputError struct{ Field string }

func (e *MissingInputError) Error() string { return e.Field + " is required" }

// ProviderError wraps any failure of the completion provider. Message is safe
// to show to clients; Err keeps the original cause for server-side logs.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }
