package handlers

import "net/http"

// Index describes the API for anyone hitting the root path.
func Index(version string) http.HandlerFunc {
	body := map[string]any{
		"api":       "Güncel Adres Sorgu API",
		"version":   version,
		"teknoloji": "Go",
		"endpoints": map[string]any{
			"adres_sorgu": "/api/sorgu?tc=TCKIMLIKNO",
		},
		"examples": []string{usageSorgu},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, body)
	}
}
