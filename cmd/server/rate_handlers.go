package main

import (
	"net/http"

	"github.com/Simplici0/cleanbid/internal/scope"
)

func (s *server) handleRatesList(w http.ResponseWriter, r *http.Request) {
	rates, err := s.store.ListProductionRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (s *server) handleRatesUpsert(w http.ResponseWriter, r *http.Request) {
	var rate scope.ProductionRate
	if err := decodeJSON(w, r, &rate); err != nil {
		writeBadRequest(w, err)
		return
	}
	saved, err := s.store.UpsertProductionRate(r.Context(), rate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleRatesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := s.store.DeleteProductionRate(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
