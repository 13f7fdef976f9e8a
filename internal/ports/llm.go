package ports

import (
	"context"
	"errors"
	"fmt"
)

// LanguageModelClient sends one system+user prompt pair to a chat model and
// returns the raw reply text, which may or may not be JSON.
type LanguageModelClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// TransientError is an upstream failure worth retrying: timeouts, 429, 5xx.
type TransientError struct {
	Provider string
	Status   int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient upstream error (status %d): %v", e.Provider, e.Status, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError is an upstream failure that a retry will not fix:
// authentication, bad request, unusable response shape.
type PermanentError struct {
	Provider string
	Status   int
	Err      error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("%s: permanent upstream error (status %d): %v", e.Provider, e.Status, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	var t *TransientError
	if errors.As(err, &t) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
