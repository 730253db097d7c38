package llm

import (
	"context"
	"errors"
)

// Fallback tries each client in order and returns the first successful reply.
// When all fail, the errors are joined.
type Fallback []Client

// Complete calls each client until one succeeds.
func (f Fallback) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	var errs []error
	for _, c := range f {
		if c == nil {
			continue
		}
		s, err := c.Complete(ctx, model, systemPrompt, userMessage)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", errors.New("llm: no clients configured")
	}
	return "", errors.Join(errs...)
}
