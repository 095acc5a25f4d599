// Package middleware provides the HTTP middleware folio mounts in front of its API:
// request ids, CORS, access logging, and body size limits.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Stack is an ordered middleware chain. The first middleware added runs outermost.
// The zero value is an empty stack ready for use.
type Stack struct {
	chain []Middleware
}

// Use appends middleware to the end of the chain. Nil entries are skipped.
func (s *Stack) Use(mws ...Middleware) {
	for _, mw := range mws {
		if mw != nil {
			s.chain = append(s.chain, mw)
		}
	}
}

// Len returns the number of middleware in the chain.
func (s *Stack) Len() int {
	return len(s.chain)
}

// Apply wraps handler with every middleware in the chain.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.chain) - 1; i >= 0; i-- {
		handler = s.chain[i](handler)
	}
	return handler
}
