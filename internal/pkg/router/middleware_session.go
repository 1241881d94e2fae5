package router

import "net/http"

// SessionResolver attaches the caller's session, when one exists, to the request context.
//
// Resolution never rejects a request; handlers that need an identity check the
// context themselves.
type SessionResolver interface {
	Resolve(r *http.Request) *http.Request
}

func middlewareSession(resolver SessionResolver) Middleware {
	if resolver == nil {
		return nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, resolver.Resolve(r))
		})
	}
}
