package router

import (
	"context"
	"net/http"
	"time"

	"medication-reminder/internal/platform/logger"
)

type readyPinger interface {
	Ping(ctx context.Context) error
}

type readyResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Duration string            `json:"duration"`
}

// readyHandler comprueba la base (si hay) y el almacén de revocaciones.
func readyHandler(db func(context.Context) error, sessions readyPinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "sessions": "ok"}
		healthy := true

		if db != nil {
			if err := db(ctx); err != nil {
				checks["database"] = err.Error()
				healthy = false
			}
		} else {
			checks["database"] = "memory"
		}
		if sessions != nil {
			if err := sessions.Ping(ctx); err != nil {
				checks["sessions"] = err.Error()
				healthy = false
			}
		}

		status := http.StatusOK
		resp := readyResponse{Status: "ready", Checks: checks, Duration: time.Since(start).String()}
		if !healthy {
			status = http.StatusServiceUnavailable
			resp.Status = "unavailable"
			logger.FromContext(r.Context(), log).Warn("readiness check failed", map[string]any{"checks": checks})
		}
		writeJSON(w, status, resp)
	}
}
