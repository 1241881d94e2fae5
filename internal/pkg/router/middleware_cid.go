package router

import (
	"net/http"

	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/uid"
)

const (
	// HeaderCorrelationID is echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted from proxies that do not set HeaderCorrelationID.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

// acceptCID reports whether an inbound id is safe to log and echo: non-empty,
// bounded, printable ASCII without spaces.
func acceptCID(v string) bool {
	if v == "" || len(v) > maxCIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] <= ' ' || v[i] > '~' {
			return false
		}
	}
	return true
}

func correlationID(r *http.Request, gen uid.StringID) string {
	for _, h := range [...]string{HeaderCorrelationID, HeaderRequestID} {
		if v := r.Header.Get(h); acceptCID(v) {
			return v
		}
	}
	if gen == nil {
		return ""
	}
	return gen.Generate()
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cid := correlationID(r, gen); cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}
			next.ServeHTTP(w, r)
		})
	}
}
