package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"adres-api/models"
)

const usageSorgu = "/api/sorgu?tc=11111111111"

// Looker is the address lookup the handlers delegate to (*sorgu.Service).
type Looker interface {
	Lookup(ctx context.Context, tc string) (models.Response, int)
}

type Adres struct {
	svc Looker
}

func NewAdres(svc Looker) *Adres {
	return &Adres{svc: svc}
}

// GET /api/sorgu?tc=XXXXXXXXXXX
func (h *Adres) Sorgu(w http.ResponseWriter, r *http.Request) {
	tc := r.URL.Query().Get("tc")
	if tc == "" {
		respondJSON(w, http.StatusBadRequest, models.Response{
			models.KeyError: "TC kimlik parametresi gerekli",
			models.KeyUsage: usageSorgu,
		})
		return
	}
	h.lookup(w, r, tc)
}

// GET /api/sorgu/{tc}
func (h *Adres) SorguDirect(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, mux.Vars(r)["tc"])
}

func (h *Adres) lookup(w http.ResponseWriter, r *http.Request, tc string) {
	body, status := h.svc.Lookup(r.Context(), tc)
	respondJSON(w, status, body)
}
