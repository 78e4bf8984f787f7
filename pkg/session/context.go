package session

import "context"

type recordContextKey struct{}

// WithRecord stores a verified session record in the context. Set by the
// verification gateway after a successful fingerprint match.
func WithRecord(ctx context.Context, rec Record) context.Context {
	return context.WithValue(ctx, recordContextKey{}, rec)
}

// FromContext retrieves the verified session record from the context.
func FromContext(ctx context.Context) (Record, bool) {
	rec, ok := ctx.Value(recordContextKey{}).(Record)
	return rec, ok
}
