package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ritmo/internal/dashboard"
	applog "ritmo/internal/log"
)

// dashboardTimeout bounds the four store reads plus view computation.
const dashboardTimeout = 7 * time.Second

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ownerID := ownerFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	views, err := s.aggregator.Compute(ctx, ownerID)
	if err != nil {
		var unavailable *dashboard.StoreUnavailableError
		switch {
		case errors.As(err, &unavailable):
			slog.ErrorContext(r.Context(), "Dashboard store read failed",
				applog.FieldOwnerID, ownerID,
				applog.FieldError, err)
			writeError(w, http.StatusServiceUnavailable, "record store unavailable")
		case errors.Is(err, context.DeadlineExceeded):
			slog.WarnContext(r.Context(), "Dashboard computation timed out",
				applog.FieldOwnerID, ownerID)
			writeError(w, http.StatusGatewayTimeout, "dashboard computation timed out")
		default:
			slog.ErrorContext(r.Context(), "Dashboard computation failed",
				applog.FieldOwnerID, ownerID,
				applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, views)
}
