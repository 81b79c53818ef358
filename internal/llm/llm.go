package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation provider behind a single synchronous
// call. The insight agent is the only consumer; its fallback logic is tested
// against fake implementations of this interface.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers with no usable
// text.
var ErrEmptyCompletion = errors.New("empty completion from provider")
