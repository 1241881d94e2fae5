package session

import "context"

type currentKey struct{}

// Current is the session attached to a request.
type Current struct {
	ID       string
	Identity Identity
}

// WithCurrent returns a copy of ctx carrying the resolved session.
func WithCurrent(ctx context.Context, cur Current) context.Context {
	return context.WithValue(ctx, currentKey{}, cur)
}

// FromContext returns the resolved session, if the request had a valid one.
func FromContext(ctx context.Context) (Current, bool) {
	cur, ok := ctx.Value(currentKey{}).(Current)
	return cur, ok
}
