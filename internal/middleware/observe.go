package middleware

import (
	"net/http"
	"time"

	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Observe registra cada request: logger con request_id en el contexto,
// línea de acceso al terminar y métricas por patrón de ruta.
// Debe ir después de chimw.RequestID.
func Observe(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(map[string]any{"request_id": chimw.GetReqID(r.Context())})
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)

			m.ObserveHTTP(r.Method, route, status, elapsed)
			reqLog.Debug("http request", map[string]any{
				"method":   r.Method,
				"path":     r.URL.Path,
				"route":    route,
				"status":   status,
				"duration": elapsed.String(),
			})
		})
	}
}
