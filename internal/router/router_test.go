package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medication-reminder/internal/router"

	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(router.Options{Location: time.UTC, PasswordCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CaregiverFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Registro
	elderID := register(t, ts.URL, "maria@example.com", "0042")

	// 2) Login del cuidador
	var login struct {
		Token     string `json:"token"`
		Caregiver struct {
			Email string `json:"email"`
		} `json:"caregiver"`
		Elder struct {
			ID string `json:"id"`
		} `json:"elder"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/login/caregiver", "", map[string]any{
			"email":    "MARIA@example.com",
			"password": "caregiver-pass",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &login)
		if login.Token == "" || login.Elder.ID != elderID || login.Caregiver.Email != "maria@example.com" {
			t.Fatalf("unexpected login response: %s", string(body))
		}
	}

	// 3) Sesión
	{
		st, body := doReq(t, ts.URL, "GET", "/api/me", login.Token, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"role":"caregiver"`) {
			t.Fatalf("expected caregiver identity, got %d body=%s", st, string(body))
		}
	}

	// 4) Medicamentos, listados por hora
	evening := createMedication(t, ts.URL, elderID, "Simvastatin", "21:00")
	morning := createMedication(t, ts.URL, elderID, "Losartan", "8:00")
	createMedication(t, ts.URL, elderID, "Metformin", "12:30")
	{
		st, body := doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/medications", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var meds []struct {
			ID   string `json:"id"`
			Time string `json:"time"`
		}
		mustJSON(t, body, &meds)
		if len(meds) != 3 || meds[0].Time != "08:00" || meds[1].Time != "12:30" || meds[2].Time != "21:00" {
			t.Fatalf("expected medications ordered by time, got %s", string(body))
		}
		if meds[0].ID != morning || meds[2].ID != evening {
			t.Fatalf("unexpected order of ids: %s", string(body))
		}
	}

	// 5) Edición
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/medications/"+morning, "", map[string]any{
			"name": "Losartan", "dosage": "100mg", "time": "07:45",
		})
		if st != http.StatusOK || !strings.Contains(string(body), `"dosage":"100mg"`) {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
	}

	// 6) Logout revoca el token
	{
		st, body := doReq(t, ts.URL, "POST", "/api/logout", login.Token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logout, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/me", login.Token, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func TestHTTP_Register_DuplicateEmail_Conflict(t *testing.T) {
	ts := newServer(t)
	register(t, ts.URL, "maria@example.com", "1111")

	st, body := doReq(t, ts.URL, "POST", "/api/register", "", registerPayload("Maria@Example.com", "2222"))
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate email, got %d body=%s", st, string(body))
	}

	// el idoso del intento fallido no existe
	st, _ = doReq(t, ts.URL, "POST", "/api/login/elder", "", map[string]any{"login_code": "2222", "password": "1234"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for elder of failed registration, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/api/register", "", registerPayload("other@example.com", "1111"))
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate login code, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Register_Validation(t *testing.T) {
	ts := newServer(t)

	p := registerPayload("maria@example.com", "12ab")
	st, body := doReq(t, ts.URL, "POST", "/api/register", "", p)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 non numeric code, got %d body=%s", st, string(body))
	}

	p = registerPayload("maria@example.com", "1234")
	delete(p, "elder_name")
	st, _ = doReq(t, ts.URL, "POST", "/api/register", "", p)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing elder name, got %d", st)
	}
}

func TestHTTP_Login_UniformFailure(t *testing.T) {
	ts := newServer(t)
	register(t, ts.URL, "maria@example.com", "0042")

	stWrong, bodyWrong := doReq(t, ts.URL, "POST", "/api/login/caregiver", "", map[string]any{
		"email": "maria@example.com", "password": "nope",
	})
	stUnknown, bodyUnknown := doReq(t, ts.URL, "POST", "/api/login/caregiver", "", map[string]any{
		"email": "ghost@example.com", "password": "nope",
	})
	if stWrong != http.StatusUnauthorized || stUnknown != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", stWrong, stUnknown)
	}
	if string(bodyWrong) != string(bodyUnknown) {
		t.Fatalf("responses must be identical: %s vs %s", string(bodyWrong), string(bodyUnknown))
	}

	stWrong, bodyWrong = doReq(t, ts.URL, "POST", "/api/login/elder", "", map[string]any{"login_code": "0042", "password": "0000"})
	stUnknown, bodyUnknown = doReq(t, ts.URL, "POST", "/api/login/elder", "", map[string]any{"login_code": "9999", "password": "0000"})
	if stWrong != http.StatusUnauthorized || string(bodyWrong) != string(bodyUnknown) {
		t.Fatalf("elder login failures must match: %d %s vs %d %s", stWrong, bodyWrong, stUnknown, bodyUnknown)
	}

	st, body := doReq(t, ts.URL, "POST", "/api/login/elder", "", map[string]any{"login_code": "0042", "password": "1234"})
	if st != http.StatusOK || !strings.Contains(string(body), `"token"`) {
		t.Fatalf("expected elder login, got %d body=%s", st, string(body))
	}
}

func TestHTTP_History_DateFilterAndRetention(t *testing.T) {
	ts := newServer(t)
	elderID := register(t, ts.URL, "maria@example.com", "0042")
	medID := createMedication(t, ts.URL, elderID, "Losartan", "08:00")

	// fecha obligatoria
	{
		st, body := doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/history", "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without date, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/history?date=01-05-2025", "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 malformed date, got %d", st)
		}
	}

	// estado inválido y medicamento inexistente
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/history", "", map[string]any{"medication_id": medID, "status": "skipped"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid status, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/api/history", "", map[string]any{"medication_id": "ghost", "status": "late"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown medication, got %d", st)
		}
	}

	var rec struct {
		Entry struct {
			RecordedAt time.Time `json:"recorded_at"`
		} `json:"entry"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/history", "", map[string]any{"medication_id": medID, "status": "on-time"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &rec)
	}
	day := rec.Entry.RecordedAt.UTC().Format("2006-01-02")

	{
		st, body := doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/history?date="+day, "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"medication_name":"Losartan"`) {
			t.Fatalf("expected joined entry, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/history?date=2001-01-01", "", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty list, got %d body=%s", st, string(body))
		}
	}

	// borrar el medicamento conserva su historial
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/medications/"+medID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/medications/"+medID, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/api/medications/"+medID+"/history", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"status":"on-time"`) {
			t.Fatalf("expected retained history, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/history?date="+day, "", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("orphaned entries must not appear in the elder listing, got %s", string(body))
		}
	}
}

func TestHTTP_Reminders_OnlyLaterToday(t *testing.T) {
	ts := newServer(t)
	if now := time.Now().UTC(); now.Hour() == 23 && now.Minute() >= 58 {
		t.Skip("too close to midnight")
	}

	elderID := register(t, ts.URL, "maria@example.com", "0042")
	createMedication(t, ts.URL, elderID, "Early", "00:00")
	createMedication(t, ts.URL, elderID, "Late", "23:59")

	st, body := doReq(t, ts.URL, "GET", "/api/elders/"+elderID+"/reminders", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
	}
	var plan []struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	mustJSON(t, body, &plan)
	if len(plan) != 1 || plan[0].Name != "Late" || plan[0].Title != "Good evening, José!" {
		t.Fatalf("expected only the later dose, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/elders/ghost/reminders", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown elder, got %d", st)
	}
}

func TestHTTP_Medications_Validation(t *testing.T) {
	ts := newServer(t)
	elderID := register(t, ts.URL, "maria@example.com", "0042")

	st, _ := doReq(t, ts.URL, "POST", "/api/medications", "", map[string]any{"elder_id": elderID, "name": "X", "dosage": "1"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing time, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/medications", "", map[string]any{"elder_id": "ghost", "name": "X", "dosage": "1", "time": "08:00"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown elder, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "PUT", "/api/medications/ghost", "", map[string]any{"name": "X", "dosage": "1", "time": "08:00"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 update unknown, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/api/medications/ghost", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 delete unknown, got %d", st)
	}
}

func TestHTTP_OperationalAndClient(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	st, body := doReq(t, ts.URL, "GET", "/health/ready", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"status":"ready"`) {
		t.Fatalf("expected ready, got %d body=%s", st, string(body))
	}

	doReq(t, ts.URL, "GET", "/api/elders/x/medications", "", nil)
	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "medremind_http_requests_total") {
		t.Fatalf("expected metrics, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/api/nope", "", nil)
	if st != http.StatusNotFound || !strings.Contains(string(body), `"message"`) {
		t.Fatalf("expected JSON 404 under /api, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/caregiver", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `<main id="app">`) {
		t.Fatalf("expected SPA fallback, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func registerPayload(email, code string) map[string]any {
	return map[string]any{
		"caregiver_name":     "Maria",
		"email":              email,
		"caregiver_password": "caregiver-pass",
		"elder_name":         "José",
		"elder_login_code":   code,
		"elder_password":     "1234",
	}
}

func register(t *testing.T, baseURL, email, code string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/register", "", registerPayload(email, code))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	var resp struct {
		ElderID string `json:"elder_id"`
	}
	mustJSON(t, body, &resp)
	if resp.ElderID == "" {
		t.Fatalf("missing elder_id: %s", string(body))
	}
	return resp.ElderID
}

func createMedication(t *testing.T, baseURL, elderID, name, tod string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/medications", "", map[string]any{
		"elder_id": elderID,
		"name":     name,
		"dosage":   "1 pill",
		"time":     tod,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medication, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &resp)
	return resp.ID
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
