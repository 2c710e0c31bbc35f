package handlers

import "net/http"

// Health returns a static ok payload for liveness checks.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "OK", "service": "Adres API"})
}
