package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medication-reminder/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/medications", createMedicationHandler(svc, log))
	r.Get("/elders/{elderID}/medications", listMedicationsHandler(svc, log))

	r.Get("/medications/{medicationID}", getMedicationHandler(svc, log))
	r.Put("/medications/{medicationID}", updateMedicationHandler(svc, log))
	r.Delete("/medications/{medicationID}", deleteMedicationHandler(svc, log))
}

type medicationRequest struct {
	ElderID  string `json:"elder_id"` // ignorado en PUT
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Time     string `json:"time"` // HH:MM
	PhotoURL string `json:"photo_url"`
	Notes    string `json:"notes"`
}

type medicationResponse struct {
	ID        string    `json:"id"`
	ElderID   string    `json:"elder_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Time      string    `json:"time"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:        m.ID,
		ElderID:   m.ElderID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Time:      m.Time.String(),
		PhotoURL:  m.PhotoURL,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// createMedicationHandler godoc
// @Summary Create medication
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Medication"
// @Success 201 {object} medicationResponse
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse "elder not found"
// @Router /medications [post]
func createMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			ElderID:  req.ElderID,
			Name:     req.Name,
			Dosage:   req.Dosage,
			Time:     req.Time,
			PhotoURL: req.PhotoURL,
			Notes:    req.Notes,
		})
		if err != nil {
			writeServiceError(w, r, log, "create medication", err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(m))
	}
}

// listMedicationsHandler godoc
// @Summary List an elder's medications ordered by time of day
// @Tags medications
// @Produce json
// @Param elderID path string true "Elder ID"
// @Success 200 {array} medicationResponse
// @Router /elders/{elderID}/medications [get]
func listMedicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByElder(r.Context(), chi.URLParam(r, "elderID"))
		if err != nil {
			writeServiceError(w, r, log, "list medications", err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Get medication
// @Tags medications
// @Produce json
// @Param medicationID path string true "Medication ID"
// @Success 200 {object} medicationResponse
// @Failure 404 {object} messageResponse
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, r, log, "get medication", err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Replace medication fields
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "Medication ID"
// @Param payload body medicationRequest true "Medication"
// @Success 200 {object} medicationResponse
// @Failure 400 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /medications/{medicationID} [put]
func updateMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "medicationID"), UpdateInput{
			Name:     req.Name,
			Dosage:   req.Dosage,
			Time:     req.Time,
			PhotoURL: req.PhotoURL,
			Notes:    req.Notes,
		})
		if err != nil {
			writeServiceError(w, r, log, "update medication", err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Delete medication (history is kept)
// @Tags medications
// @Produce json
// @Param medicationID path string true "Medication ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "medicationID")); err != nil {
			writeServiceError(w, r, log, "delete medication", err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "medication deleted"})
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrElderNotFound):
		writeError(w, http.StatusNotFound, ErrElderNotFound.Error())
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
