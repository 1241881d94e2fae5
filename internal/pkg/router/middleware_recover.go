package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/gopost/internal/pkg/stacktrace"
)

// middlewareRecoverer turns a handler panic into the same bare 500 the error
// codec writes for server errors, and hands the panic to the observability
// recorder so the span and access log carry it.
//
//nolint:contextcheck // request context is the right one to log with
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel must be re-panicked as is
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			stack := debug.Stack()
			var trace any = string(stack)
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				trace = paths
			}
			slog.ErrorContext(r.Context(), "panic while serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rvr,
				"stack", trace,
			)

			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(fmt.Errorf("panic: %v", rvr))
			}
			w.WriteHeader(http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
