package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/pricing"
	"github.com/Simplici0/cleanbid/internal/scope"
)

type previewResponse struct {
	Status   string             `json:"status"`
	Estimate *estimate.Estimate `json:"estimate,omitempty"`
}

type expressLoadRequest struct {
	scope.ExpressParams
	ServiceTemplate string `json:"service_template,omitempty"`
}

type expressLoadResponse struct {
	Generated []scope.GeneratedArea `json:"generated"`
	Areas     []scope.Area          `json:"areas,omitempty"`
}

// withRates fills an empty production-rate table from the store.
func (s *server) withRates(ctx context.Context, snap scope.Snapshot) (scope.Snapshot, error) {
	if len(snap.ProductionRates) > 0 {
		return snap, nil
	}
	rates, err := s.store.ListProductionRates(ctx)
	if err != nil {
		return scope.Snapshot{}, err
	}
	snap.ProductionRates = rates
	return snap, nil
}

func (s *server) readSnapshot(w http.ResponseWriter, r *http.Request) (scope.Snapshot, bool) {
	var snap scope.Snapshot
	if err := decodeJSON(w, r, &snap); err != nil {
		writeBadRequest(w, err)
		return scope.Snapshot{}, false
	}
	snap, err := s.withRates(r.Context(), snap)
	if err != nil {
		s.writeError(w, r, err)
		return scope.Snapshot{}, false
	}
	return snap, true
}

func (s *server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return
	}
	res, err := s.calc.Workload(snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return
	}
	if err := scope.Validate(snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	est, err := s.calc.Estimate(snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// handlePreview never reports an incomplete scope as an error.
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return
	}
	est, ready, err := s.calc.Preview(snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ready {
		writeJSON(w, http.StatusOK, previewResponse{Status: "insufficient_data"})
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Status: "ok", Estimate: &est})
}

func (s *server) handleExpressLoad(w http.ResponseWriter, r *http.Request) {
	var req expressLoadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	generated, err := scope.ExpressLoad(req.ExpressParams)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := expressLoadResponse{Generated: generated}
	if req.ServiceTemplate != "" {
		resp.Areas, err = scope.ApplyServiceTemplate(scope.Areas(generated), req.ServiceTemplate)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCrewWage(w http.ResponseWriter, r *http.Request) {
	var crew []scope.CrewMember
	if err := decodeJSON(w, r, &crew); err != nil {
		writeBadRequest(w, err)
		return
	}
	wage, ok := pricing.CalculateWeightedWage(crew)
	if !ok {
		s.writeError(w, r, scope.Insufficient("crew has no scheduled hours"))
		return
	}
	writeJSON(w, http.StatusOK, wage)
}

func (s *server) handleConsumables(w http.ResponseWriter, r *http.Request) {
	var items []scope.ConsumableItem
	if err := decodeJSON(w, r, &items); err != nil {
		writeBadRequest(w, err)
		return
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			writeBadRequest(w, fmt.Errorf("item %d: %w", i, err))
			return
		}
	}
	writeJSON(w, http.StatusOK, pricing.CalculateConsumables(items))
}

func (s *server) handleDayPorter(w http.ResponseWriter, r *http.Request) {
	var cfg scope.DayPorter
	if err := decodeJSON(w, r, &cfg); err != nil {
		writeBadRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pricing.CalculateDayPorter(&cfg))
}
