package http

import (
	"net/http"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "College Schedule API",
		"version": s.deps.Version,
		"endpoints": map[string]string{
			"health":   "/health",
			"schedule": "/api/schedule/group/{groupName}?start=YYYY-MM-DD&end=YYYY-MM-DD",
			"groups":   "/api/schedule/groups",
		},
	})
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": s.deps.Version,
	})
}

// handleReady handles the readiness endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetGroupSchedule handles GET /api/schedule/group/{groupName}?start=&end=
func (s *Server) handleGetGroupSchedule(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetGroupScheduleHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "Расписание недоступно.")
		return
	}

	req := scheduleRequest{
		GroupName: r.PathValue("groupName"),
		Start:     r.URL.Query().Get("start"),
		End:       r.URL.Query().Get("end"),
	}

	q, err := req.toQuery(s.validate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	days, err := s.deps.GetGroupScheduleHandler.Handle(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDayDTOs(days))
}

// handleListGroups handles GET /api/schedule/groups
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	if s.deps.ListGroupsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "Список групп недоступен.")
		return
	}

	groups, err := s.deps.ListGroupsHandler.Handle(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupDTOs(groups))
}
