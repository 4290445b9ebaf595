// Package ai holds the generative-text clients. Clients are constructed
// explicitly and injected; nothing here runs at import time.
package ai

import (
	"context"
)

// TextGenerator is the single-prompt-in, single-text-out contract the tip and
// recommendation flows depend on. Calls are never retried by callers.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
