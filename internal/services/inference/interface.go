package inference

import "context"

// Client sends an assembled prompt to the hosted model and returns the
// textual answer.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
