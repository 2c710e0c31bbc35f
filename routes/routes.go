package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"adres-api/handlers"
	"adres-api/metrics"
	"adres-api/middlewares"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Lookup     handlers.Looker
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
	Version    string
	CORSOrigin string
}

func RegisterRoutes(r *mux.Router, d Deps) {
	// Middlewares (önce log/metrik, sonra CORS, sonra JSON)
	chain := middlewares.Logging(d.Logger)
	if d.Metrics != nil {
		chain = append(chain, d.Metrics.Middleware)
	}
	chain = append(chain, corsMiddleware(d.CORSOrigin), defaultJSONMiddleware)
	r.Use(chain...)

	adres := handlers.NewAdres(d.Lookup)

	r.HandleFunc("/", handlers.Index(d.Version)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet, http.MethodOptions)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet, http.MethodOptions)
	}

	api := r.PathPrefix("/api").Subrouter()

	// --- Health & Version ---
	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Adres API Aktif",
		})
	}).Methods(http.MethodGet, http.MethodOptions)

	api.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "adres-api",
			"version": d.Version,
		})
	}).Methods(http.MethodGet, http.MethodOptions)

	// --- Adres sorgu ---
	api.HandleFunc("/sorgu", adres.Sorgu).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sorgu/{tc}", adres.SorguDirect).Methods(http.MethodGet, http.MethodOptions)

	// mux, Use ile eklenenleri eşleşmeyen isteklerde çalıştırmaz
	r.NotFoundHandler = wrap(chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	}))
	r.MethodNotAllowedHandler = wrap(chain, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	}))
}

// wrap applies chain the way mux does: chain[0] is outermost.
func wrap(chain []mux.MiddlewareFunc, h http.Handler) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

// ------------ helpers ------------
func corsMiddleware(allowOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowOrigin != "":
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			case origin != "":
				w.Header().Set("Access-Control-Allow-Origin", origin)
			default:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-Requested-With")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Type, X-Request-ID")

			// Preflight ise hemen dön
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func defaultJSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// yalnızca JSON yanıtlar için varsayılan content-type
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, code, map[string]any{"error": msg})
}
