package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/store"
)

type createBidRequest struct {
	Name   string `json:"name"`
	Client string `json:"client"`
}

type bidDetailResponse struct {
	store.Bid
	Versions []store.Version `json:"versions"`
}

type diffResponse struct {
	From    int               `json:"from"`
	To      int               `json:"to"`
	Changes []estimate.Change `json:"changes"`
}

func (s *server) handleBidsList(w http.ResponseWriter, r *http.Request) {
	bids, err := s.store.ListBids(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

func (s *server) handleBidsCreate(w http.ResponseWriter, r *http.Request) {
	var req createBidRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeBadRequest(w, errors.New("name is required"))
		return
	}
	bid, err := s.store.CreateBid(r.Context(), req.Name, req.Client)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

func (s *server) handleBidDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	bid, err := s.store.GetBid(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	versions, err := s.store.ListVersions(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bidDetailResponse{Bid: bid, Versions: versions})
}

// handleBidDiff compares the stored estimates of two versions.
func (s *server) handleBidDiff(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	from, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		writeBadRequest(w, fmt.Errorf("invalid from version: %w", err))
		return
	}
	to, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		writeBadRequest(w, fmt.Errorf("invalid to version: %w", err))
		return
	}

	a, err := s.store.GetVersion(r.Context(), id, from)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.store.GetVersion(r.Context(), id, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diffResponse{From: from, To: to, Changes: estimate.Diff(a.Estimate, b.Estimate)})
}

// calculateSnapshot validates and estimates a snapshot posted for a bid.
func (s *server) calculateSnapshot(w http.ResponseWriter, r *http.Request) (scope.Snapshot, estimate.Estimate, bool) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return scope.Snapshot{}, estimate.Estimate{}, false
	}
	if err := scope.Validate(snap); err != nil {
		s.writeError(w, r, err)
		return scope.Snapshot{}, estimate.Estimate{}, false
	}
	est, err := s.calc.Estimate(snap)
	if err != nil {
		s.writeError(w, r, err)
		return scope.Snapshot{}, estimate.Estimate{}, false
	}
	return snap, est, true
}

func (s *server) handleVersionCreate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	snap, est, ok := s.calculateSnapshot(w, r)
	if !ok {
		return
	}
	v, err := s.store.SaveVersion(r.Context(), id, snap, est)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *server) versionFromPath(w http.ResponseWriter, r *http.Request) (store.Version, bool) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeBadRequest(w, err)
		return store.Version{}, false
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n <= 0 {
		writeBadRequest(w, fmt.Errorf("invalid version %q", chi.URLParam(r, "n")))
		return store.Version{}, false
	}
	v, err := s.store.GetVersion(r.Context(), id, n)
	if err != nil {
		s.writeError(w, r, err)
		return store.Version{}, false
	}
	return v, true
}

func (s *server) handleVersionDetail(w http.ResponseWriter, r *http.Request) {
	v, ok := s.versionFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleVersionUpdate recalculates a DRAFT version in place.
func (s *server) handleVersionUpdate(w http.ResponseWriter, r *http.Request) {
	v, ok := s.versionFromPath(w, r)
	if !ok {
		return
	}
	if v.Status == store.StatusSent {
		s.writeError(w, r, store.ErrVersionLocked)
		return
	}
	snap, est, ok := s.calculateSnapshot(w, r)
	if !ok {
		return
	}
	if err := s.store.UpdateVersion(r.Context(), v.ID, snap, est); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.store.GetVersion(r.Context(), v.BidID, v.Number)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleVersionSummary renders the stored estimate as sent, without
// recalculating.
func (s *server) handleVersionSummary(w http.ResponseWriter, r *http.Request) {
	v, ok := s.versionFromPath(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(estimate.Summary(v.Estimate)))
}

func (s *server) handleVersionSend(w http.ResponseWriter, r *http.Request) {
	v, ok := s.versionFromPath(w, r)
	if !ok {
		return
	}
	if err := s.store.MarkSent(r.Context(), v.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	sent, err := s.store.GetVersion(r.Context(), v.BidID, v.Number)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sent)
}
