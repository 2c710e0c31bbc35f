package middlewares

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Logging attaches l to every request and writes one access line per request.
// Paths are logged by route template so identity numbers never reach the log.
func Logging(l zerolog.Logger) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		hlog.NewHandler(l),
		RequestID,
		hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
			ev := hlog.FromRequest(r).Info()
			if status >= http.StatusInternalServerError {
				ev = hlog.FromRequest(r).Error()
			}
			ev.Str("method", r.Method).
				Str("route", routeOf(r)).
				Int("status", status).
				Int("size", size).
				Dur("duration", d).
				Msg("istek")
		}),
	}
}

func routeOf(r *http.Request) string {
	if cr := mux.CurrentRoute(r); cr != nil {
		if tpl, err := cr.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
