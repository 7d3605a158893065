package ai

import (
	"context"
	"errors"
)

var (
	// ErrEmptyPrompt is reported for blank prompts; no call is made.
	ErrEmptyPrompt = errors.New("empty prompt")
	// ErrNotConfigured is returned by Noop.
	ErrNotConfigured = errors.New("generation provider not configured")
)

// Options tune a single completion call.
type Options struct {
	// System is an optional system instruction.
	System string
	// JSON asks the provider for a JSON-shaped reply where supported.
	JSON        bool
	MaxTokens   int
	Temperature *float32
}

// Provider is the text-generation capability.
type Provider interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Noop stands in when no credential is available. Every call fails, which the
// Generator turns into empty content.
type Noop struct{}

func (Noop) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	return "", ErrNotConfigured
}

// Temperature returns a pointer suitable for Options.Temperature; zero means
// the provider default.
func Temperature(t float64) *float32 {
	if t == 0 {
		return nil
	}
	v := float32(t)
	return &v
}
