package brain

import (
	"context"
	"fmt"
)

// Provider abstracts the text-generation API (Claude, Gemini, etc.).
type Provider interface {
	Name() string
	Send(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// ProviderError wraps a failed generation call. Reactor never surfaces it;
// it is logged and replaced with fallback text.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
