package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medication-reminder/internal/middleware"
	"medication-reminder/internal/platform/logger"
	"medication-reminder/internal/platform/metrics"
	"medication-reminder/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// SessionRevoker invalida el token de la sesión actual (logout).
type SessionRevoker interface {
	Revoke(ctx context.Context, claims auth.Claims) error
}

func RegisterRoutes(r chi.Router, svc *Service, sessions SessionRevoker, log logger.Logger, m *metrics.Metrics) {
	r.Post("/register", registerHandler(svc, log, m))
	r.Post("/login/caregiver", loginCaregiverHandler(svc, log, m))
	r.Post("/login/elder", loginElderHandler(svc, log, m))

	r.Get("/me", meHandler())
	r.Post("/logout", logoutHandler(sessions, log))
}

type registerRequest struct {
	CaregiverName     string `json:"caregiver_name"`
	Email             string `json:"email"`
	CaregiverPassword string `json:"caregiver_password"`
	ElderName         string `json:"elder_name"`
	ElderLoginCode    string `json:"elder_login_code"`
	ElderPassword     string `json:"elder_password"`
}

type registerResponse struct {
	Message     string `json:"message"`
	CaregiverID string `json:"caregiver_id"`
	ElderID     string `json:"elder_id"`
}

type caregiverLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type elderLoginRequest struct {
	LoginCode string `json:"login_code"`
	Password  string `json:"password"`
}

type caregiverSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type elderSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type caregiverLoginResponse struct {
	Message   string           `json:"message"`
	Caregiver caregiverSummary `json:"caregiver"`
	Elder     elderSummary     `json:"elder"`
	Token     string           `json:"token"`
}

type elderLoginResponse struct {
	Message string       `json:"message"`
	Elder   elderSummary `json:"elder"`
	Token   string       `json:"token"`
}

type meResponse struct {
	Subject   string    `json:"subject"`
	Role      auth.Role `json:"role"`
	ElderID   string    `json:"elder_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// registerHandler godoc
// @Summary Register caregiver and elder
// @Description Creates one caregiver and the elder they manage in a single transaction.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Account data"
// @Success 201 {object} registerResponse
// @Failure 400 {object} messageResponse "missing or malformed field"
// @Failure 409 {object} messageResponse "email or login code already in use"
// @Failure 500 {object} messageResponse
// @Router /register [post]
func registerHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, e, err := svc.Register(r.Context(), RegisterInput{
			CaregiverName:     req.CaregiverName,
			Email:             req.Email,
			CaregiverPassword: req.CaregiverPassword,
			ElderName:         req.ElderName,
			ElderLoginCode:    req.ElderLoginCode,
			ElderPassword:     req.ElderPassword,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				m.ObserveRegistration("invalid")
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrConflict):
				m.ObserveRegistration("conflict")
				writeError(w, http.StatusConflict, ErrConflict.Error())
			default:
				m.ObserveRegistration("error")
				logger.FromContext(r.Context(), log).Error("register account", map[string]any{"err": err})
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		m.ObserveRegistration("created")
		writeJSON(w, http.StatusCreated, registerResponse{
			Message:     "account created",
			CaregiverID: c.ID,
			ElderID:     e.ID,
		})
	}
}

// loginCaregiverHandler godoc
// @Summary Caregiver login
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body caregiverLoginRequest true "Credentials"
// @Success 200 {object} caregiverLoginResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse "invalid email or password"
// @Router /login/caregiver [post]
func loginCaregiverHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req caregiverLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sess, err := svc.AuthenticateCaregiver(r.Context(), req.Email, req.Password)
		if err != nil {
			writeLoginError(w, r, log, m, string(auth.RoleCaregiver), "invalid email or password", err)
			return
		}

		m.ObserveLogin(string(auth.RoleCaregiver), "ok")
		writeJSON(w, http.StatusOK, caregiverLoginResponse{
			Message: "login successful",
			Caregiver: caregiverSummary{
				ID:    sess.Caregiver.ID,
				Name:  sess.Caregiver.Name,
				Email: sess.Caregiver.Email,
			},
			Elder: elderSummary{ID: sess.Elder.ID, Name: sess.Elder.Name},
			Token: sess.Token,
		})
	}
}

// loginElderHandler godoc
// @Summary Elder login with numeric code
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body elderLoginRequest true "Credentials"
// @Success 200 {object} elderLoginResponse
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse "invalid login code or password"
// @Router /login/elder [post]
func loginElderHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req elderLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sess, err := svc.AuthenticateElder(r.Context(), req.LoginCode, req.Password)
		if err != nil {
			writeLoginError(w, r, log, m, string(auth.RoleElder), "invalid login code or password", err)
			return
		}

		m.ObserveLogin(string(auth.RoleElder), "ok")
		writeJSON(w, http.StatusOK, elderLoginResponse{
			Message: "login successful",
			Elder:   elderSummary{ID: sess.Elder.ID, Name: sess.Elder.Name},
			Token:   sess.Token,
		})
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, meResponse{
			Subject:   claims.Subject,
			Role:      claims.Role,
			ElderID:   claims.ElderID,
			Name:      claims.Name,
			ExpiresAt: claims.ExpiresAt,
		})
	}
}

func logoutHandler(sessions SessionRevoker, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if sessions != nil {
			if err := sessions.Revoke(r.Context(), claims); err != nil {
				logger.FromContext(r.Context(), log).Error("revoke session", map[string]any{"err": err})
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "session ended"})
	}
}

// writeLoginError mantiene un único mensaje para credenciales inválidas,
// sin revelar cuál de los dos datos falló.
func writeLoginError(w http.ResponseWriter, r *http.Request, log logger.Logger, m *metrics.Metrics, role, invalidMsg string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		m.ObserveLogin(role, "invalid")
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		m.ObserveLogin(role, "invalid_credentials")
		writeError(w, http.StatusUnauthorized, invalidMsg)
	default:
		m.ObserveLogin(role, "error")
		logger.FromContext(r.Context(), log).Error("login", map[string]any{"role": role, "err": err})
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
