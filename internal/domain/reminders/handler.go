package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medication-reminder/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/elders/{elderID}/reminders", todayHandler(svc, log))
}

type reminderResponse struct {
	MedicationID string    `json:"medication_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Time         string    `json:"time"`
	At           time.Time `json:"at"`
	InSeconds    int64     `json:"in_seconds"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// todayHandler godoc
// @Summary Pending reminders for today
// @Description Doses later today in the reference timezone; earlier ones are skipped.
// @Tags reminders
// @Produce json
// @Param elderID path string true "Elder ID"
// @Success 200 {array} reminderResponse
// @Failure 404 {object} messageResponse "elder not found"
// @Router /elders/{elderID}/reminders [get]
func todayHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		elder, plan, err := svc.Today(r.Context(), chi.URLParam(r, "elderID"))
		if err != nil {
			if errors.Is(err, ErrElderNotFound) {
				writeJSON(w, http.StatusNotFound, messageResponse{Message: ErrElderNotFound.Error()})
				return
			}
			logger.FromContext(r.Context(), log).Error("plan reminders", map[string]any{"err": err})
			writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
			return
		}

		out := make([]reminderResponse, 0, len(plan))
		for _, rem := range plan {
			n := NotificationFor(elder.Name, rem, rem.At)
			out = append(out, reminderResponse{
				MedicationID: rem.MedicationID,
				Name:         rem.Name,
				Dosage:       rem.Dosage,
				Time:         rem.Time.String(),
				At:           rem.At,
				InSeconds:    int64(rem.Delay / time.Second),
				Title:        n.Title,
				Body:         n.Body,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
