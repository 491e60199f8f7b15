package llm

import "context"

// Client sends a system instruction and user text to a completion endpoint.
// Every non-nil error returned by an implementation is an *Error.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
