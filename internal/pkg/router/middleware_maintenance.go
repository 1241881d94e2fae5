package router

import (
	"net/http"
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/config"
)

const maintenanceRetryAfter = 60

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. Entries are a route pattern ("/api/posts/:id"),
// a method and pattern ("DELETE /api/users/:id"), or "*" for every route.
// The list is read per request so config reloads apply immediately.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		if cfg == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			blocked := cfg.GetArray("app.maintenance.endpoints")

			if lo.Contains(blocked, "*") || lo.Contains(blocked, route) || lo.Contains(blocked, r.Method+" "+route) {
				w.Header().Set("Retry-After", strconv.Itoa(maintenanceRetryAfter))
				writeJSON(w, errorResponse{Code: "UNAVAILABLE", Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
