// Package identity carries the authenticated requester through request
// contexts.
package identity

import "context"

// Identity is the authenticated caller of an API operation, as established
// by the authentication middleware.
type Identity struct {
	RequesterID string
	Department  string
	MFAUsed     bool
}

type contextKey struct{}

// NewContext returns a context carrying the identity.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity established by authentication. The
// boolean is false on contexts that never passed through the middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
