// Package identity resolves the acting user for an operation. An identity is an
// email-like string. It reaches domain code explicitly as a value; this package
// only decides where that value comes from: a static default, a request context,
// or a verified OIDC token.
package identity

import "context"

// Provider resolves the identity of the user performing an action.
type Provider interface {
	Current(ctx context.Context) (string, error)
}

// Static is a Provider that always returns the same identity.
type Static string

// Current returns the static identity, or ErrNoIdentity if it is empty.
func (s Static) Current(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNoIdentity
	}
	return string(s), nil
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

type contextual struct {
	fallback Provider
}

// Contextual returns a Provider that prefers the identity carried by the context
// and falls back to the given provider when none is present.
func Contextual(fallback Provider) Provider {
	return &contextual{fallback: fallback}
}

func (c *contextual) Current(ctx context.Context) (string, error) {
	if id, ok := FromContext(ctx); ok {
		return id, nil
	}
	if c.fallback == nil {
		return "", ErrNoIdentity
	}
	return c.fallback.Current(ctx)
}
