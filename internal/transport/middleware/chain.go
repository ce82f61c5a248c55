package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one sees the request first.
// The server stack is Chain(RequestID(), Logger(l), Recovery(l)): Logger
// sits outside Recovery to log the 500 a recovered panic produces, and both
// sit inside RequestID so their log lines carry the request id.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
