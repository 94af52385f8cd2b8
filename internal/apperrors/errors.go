// internal/apperrors/errors.go
package apperrors

import "errors"

// Failure taxonomy shared by services, stores and handlers. Handlers map
// these onto status codes with errors.Is; everything else wraps them with
// fmt.Errorf("...: %w", ...) so context survives the trip up.
var (
	// ErrValidation marks user-correctable input problems (400).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced record that does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrAssistantUnavailable covers the assistant being unreachable, timing
	// out, or returning a malformed payload. Question generation absorbs it,
	// scoring propagates it, report analysis degrades on it.
	ErrAssistantUnavailable = errors.New("assistant unavailable")

	// ErrStorage marks persistence failures; always fatal to the request (500).
	ErrStorage = errors.New("storage failure")
)
