package router

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/gopost/internal/pkg/idempotency"
)

// HeaderIdempotencyKey carries the client-chosen key for a retry-safe write.
const HeaderIdempotencyKey = "Idempotency-Key"

type idempotencyRecorder struct {
	http.ResponseWriter
	status int
}

func (w *idempotencyRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *idempotencyRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(p)
}

func (w *idempotencyRecorder) SetError(err error) {
	if setter, ok := w.ResponseWriter.(interface{ SetError(error) }); ok {
		setter.SetError(err)
	}
}

// Idempotent guards a write endpoint with the Idempotency-Key header.
//
// Requests without the header, or with a key that is empty, longer than 128
// bytes or not printable ASCII, pass through unguarded. A key that is in progress or already
// completed within ttl is answered with 409. Responses with status >= 400 release
// the key so the client may retry. When the store is unreachable the request is
// served without the guard.
func Idempotent(store idempotency.Idempotency, ttl time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderIdempotencyKey)
			if store == nil || !acceptCID(key) {
				next.ServeHTTP(w, r)
				return
			}

			ran := false
			err := store.Exec(r.Context(), r.Method+":"+matchedRoutePath(r)+":"+key, func() bool {
				ran = true
				rec := &idempotencyRecorder{ResponseWriter: w}
				next.ServeHTTP(rec, r)
				return rec.status > 0 && rec.status < http.StatusBadRequest
			}, idempotency.WithStateTTL(ttl))

			switch {
			case err == nil:
			case errors.Is(err, idempotency.ErrAlreadyInProgress):
				writeJSON(w, errorResponse{Code: "CONFLICT", Message: "request with this idempotency key is in progress"}, http.StatusConflict)
			case errors.Is(err, idempotency.ErrAlreadyCompleted):
				writeJSON(w, errorResponse{Code: "CONFLICT", Message: "request with this idempotency key was already processed"}, http.StatusConflict)
			case ran:
				slog.WarnContext(r.Context(), "failed to record idempotency state", "key", key, "error", err)
			default:
				slog.WarnContext(r.Context(), "idempotency store unavailable, serving without guard", "key", key, "error", err)
				next.ServeHTTP(w, r)
			}
		})
	}
}
