package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/nerrad567/grouptrail/internal/tracking"
)

// locationResponse is one element of the /api/locations array.
type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// handleGetLocations serves GET /api/locations.
//
// Validation failures are 400s. Storage failures are logged and reported as
// an empty result: a read that cannot be served looks like "no data".
func (s *Server) handleGetLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := tracking.ParseRangeQuery(q.Get("group_id"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		var ve *tracking.ValidationError
		if errors.As(err, &ve) {
			writeBadRequest(w, ve.Message)
			return
		}
		writeBadRequest(w, tracking.MsgMissingParameters)
		return
	}

	locations, err := s.repo.QueryLocations(r.Context(), query.GroupID, query.Start, query.End)
	if err != nil {
		s.logger.Error("querying locations",
			"group_id", query.GroupID,
			"error", err,
			"request_id", requestIDFrom(r.Context()),
		)
		locations = nil
	}

	resp := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, locationResponse{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Timestamp: loc.Timestamp.Format(tracking.DisplayLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListGroups serves GET /api/groups.
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.repo.ListGroups(r.Context())
	if err != nil {
		s.logger.Error("listing groups", "error", err, "request_id", requestIDFrom(r.Context()))
		writeInternalError(w, "failed to list groups")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups, "count": len(groups)})
}

// handleIndex renders the map page with the group list.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	groups, err := s.repo.ListGroups(r.Context())
	if err != nil {
		s.logger.Error("listing groups for index page", "error", err, "request_id", requestIDFrom(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.page.Render(&buf, groups); err != nil {
		s.logger.Error("rendering index page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	buf.WriteTo(w)
}

// handleHealth reports liveness and, when configured, database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"version": s.version,
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Warn("health check: database unavailable", "error", err)
			body["status"] = "unavailable"
			body["database"] = "unavailable"
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "ok"
	}

	writeJSON(w, http.StatusOK, body)
}
