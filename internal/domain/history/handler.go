package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, m *metrics.Metrics) {
	r.Post("/history", recordHandler(svc, log, m))
	r.Get("/elders/{elderID}/history", listByElderHandler(svc, log))
	r.Get("/medications/{medicationID}/history", listByMedicationHandler(svc, log))
}

type recordRequest struct {
	MedicationID string `json:"medication_id"`
	Status       string `json:"status"` // on-time | late | missed
}

type entryResponse struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medication_id"`
	Status       Status    `json:"status"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type recordResponse struct {
	Message string        `json:"message"`
	Entry   entryResponse `json:"entry"`
}

type dayEntryResponse struct {
	entryResponse
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Time           string `json:"time"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toEntryResponse(e Entry, loc *time.Location) entryResponse {
	return entryResponse{
		ID:           e.ID,
		MedicationID: e.MedicationID,
		Status:       e.Status,
		RecordedAt:   e.RecordedAt.In(loc),
	}
}

// recordHandler godoc
// @Summary Record a dose status
// @Description Appends an adherence entry stamped with the server time.
// @Tags history
// @Accept json
// @Produce json
// @Param payload body recordRequest true "Entry"
// @Success 201 {object} recordResponse
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse "medication not found"
// @Router /history [post]
func recordHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		e, err := svc.Record(r.Context(), req.MedicationID, Status(req.Status))
		if err != nil {
			writeServiceError(w, r, log, "record history", err)
			return
		}

		m.ObserveHistory(string(e.Status))
		writeJSON(w, http.StatusCreated, recordResponse{
			Message: "history recorded",
			Entry:   toEntryResponse(e, svc.Location()),
		})
	}
}

// listByElderHandler godoc
// @Summary Adherence history of an elder for one calendar day
// @Tags history
// @Produce json
// @Param elderID path string true "Elder ID"
// @Param date query string true "YYYY-MM-DD in the reference timezone"
// @Success 200 {array} dayEntryResponse
// @Failure 400 {object} messageResponse "missing or malformed date"
// @Router /elders/{elderID}/history [get]
func listByElderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByElderAndDate(r.Context(), chi.URLParam(r, "elderID"), r.URL.Query().Get("date"))
		if err != nil {
			writeServiceError(w, r, log, "list history by elder", err)
			return
		}

		out := make([]dayEntryResponse, 0, len(items))
		for _, it := range items {
			out = append(out, dayEntryResponse{
				entryResponse:  toEntryResponse(it.Entry, svc.Location()),
				MedicationName: it.MedicationName,
				Dosage:         it.Dosage,
				Time:           it.Time.String(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listByMedicationHandler godoc
// @Summary Adherence history of a medication (also after deletion)
// @Tags history
// @Produce json
// @Param medicationID path string true "Medication ID"
// @Success 200 {array} entryResponse
// @Router /medications/{medicationID}/history [get]
func listByMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByMedication(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, r, log, "list history by medication", err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e, svc.Location()))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrMedicationNotFound):
		writeError(w, http.StatusNotFound, ErrMedicationNotFound.Error())
	default:
		logger.FromContext(r.Context(), log).Error(op, map[string]any{"err": err})
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
