// Package middleware holds the HTTP middleware of the service.
//
// Request-wide concerns (recovery, request ids, logging, CORS, body limits)
// are plain net/http Middleware applied around the whole handler, so they also
// cover requests Gin never routes. Concerns that need the matched route
// (tracing, rate limiting) are Gin handlers.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
