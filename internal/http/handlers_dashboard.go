package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const dashboardCacheKey = "dashboard"

// handleDashboard returns the composite dashboard payload: the four bounded
// section queries assembled by the dashboard service. Either the full
// payload or an error; never a partial dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	if data, found := s.dashCache.Get(dashboardCacheKey); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, http.StatusOK, data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	data, err := s.dash.Snapshot(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashCache.Set(dashboardCacheKey, data)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) invalidateDashboard() {
	s.dashCache.Delete(dashboardCacheKey)
}
