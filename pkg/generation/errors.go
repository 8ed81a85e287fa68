package generation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGenerationUnavailable = errors.New("generation.errors.unavailable")
	ErrEmptyCompletion       = errors.New("generation.errors.empty_completion")
	ErrNotConfigured         = errors.New("generation.errors.strategy_not_configured")
	ErrTokenExchange         = errors.New("generation.errors.token_exchange_failed")
	ErrEmptyPrompt           = errors.New("generation.errors.empty_prompt")
)

// BackendError is a non-2xx answer from the generation backend. Message is
// truncated and meant for logs only.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation backend returned status %d: %s", e.StatusCode, e.Message)
}

// UnavailableError reports that no configured strategy produced text.
// It matches ErrGenerationUnavailable with errors.Is.
type UnavailableError struct {
	Attempts []Attempt
}

func (e *UnavailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "generation unavailable: no strategy configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return "generation unavailable: " + strings.Join(parts, "; ")
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrGenerationUnavailable
}

// Strategies lists the attempted strategies in order.
func (e *UnavailableError) Strategies() []Strategy {
	out := make([]Strategy, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Strategy)
	}
	return out
}

// UserMessage describes the failure without provider payloads.
func (e *UnavailableError) UserMessage() string {
	if len(e.Attempts) == 0 {
		return "AI generation is unavailable: no credentials configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		var be *BackendError
		switch {
		case errors.As(a.Err, &be):
			parts = append(parts, fmt.Sprintf("%s (status %d)", a.Strategy, be.StatusCode))
		case errors.Is(a.Err, ErrEmptyCompletion):
			parts = append(parts, fmt.Sprintf("%s (empty response)", a.Strategy))
		default:
			parts = append(parts, fmt.Sprintf("%s (failed)", a.Strategy))
		}
	}
	return "AI generation is unavailable, tried: " + strings.Join(parts, ", ")
}
