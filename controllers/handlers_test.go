package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeIdentity injects the context keys AuthMiddleware would normally set,
// so validation paths that run before any database access can be exercised.
func fakeIdentity(clinicID, userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("clinicId", clinicID.String())
		c.Set("userId", userID.String())
		c.Set("role", role)
		c.Next()
	}
}

func newHandlerTest(method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, fakeIdentity(uuid.New(), uuid.New(), "admin"), handler)
	return r
}

func doJSON(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) []map[string]string {
	t.Helper()
	var body struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Errors  []map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	return body.Errors
}

func TestSearchPatientsRequiresQuery(t *testing.T) {
	r := newHandlerTest("GET", "/api/patients/search", SearchPatients)
	w := doJSON(r, "GET", "/api/patients/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "'q' is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSearchDoctorsRequiresQuery(t *testing.T) {
	r := newHandlerTest("GET", "/api/doctors/search", SearchDoctors)
	w := doJSON(r, "GET", "/api/doctors/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestSearchCategoriesRequiresQuery(t *testing.T) {
	r := newHandlerTest("GET", "/api/service-categories/search", SearchCategories)
	w := doJSON(r, "GET", "/api/service-categories/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestCreateCategoryRejectsBadColor(t *testing.T) {
	r := newHandlerTest("POST", "/api/service-categories", CreateCategory)
	w := doJSON(r, "POST", "/api/service-categories", `{"name":"Orthodontics","color":"blue"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	errs := decodeErrors(t, w)
	if len(errs) != 1 || errs[0]["field"] != "color" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestCreateCategoryCollectsBindingErrors(t *testing.T) {
	r := newHandlerTest("POST", "/api/service-categories", CreateCategory)
	w := doJSON(r, "POST", "/api/service-categories", `{"name":"X"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	errs := decodeErrors(t, w)
	if len(errs) != 1 || errs[0]["field"] != "name" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestUpdateDoctorScheduleRejectsMalformedTimes(t *testing.T) {
	r := newHandlerTest("PUT", "/api/doctors/:id/schedule", UpdateDoctorSchedule)
	body := `{
		"workingDays": [
			{"day": "monday", "startTime": "9am", "endTime": "17:00"},
			{"day": "someday", "startTime": "09:00", "endTime": "08:00"}
		]
	}`
	w := doJSON(r, "PUT", "/api/doctors/"+uuid.NewString()+"/schedule", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", w.Code, w.Body.String())
	}
	errs := decodeErrors(t, w)
	if len(errs) != 3 {
		t.Errorf("expected 3 collected errors, got %d: %v", len(errs), errs)
	}
}

func TestUpdateDoctorScheduleRejectsBadID(t *testing.T) {
	r := newHandlerTest("PUT", "/api/doctors/:id/schedule", UpdateDoctorSchedule)
	w := doJSON(r, "PUT", "/api/doctors/not-a-uuid/schedule", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestCreateAppointmentRejectsPaymentMismatch(t *testing.T) {
	r := newHandlerTest("POST", "/api/appointments", CreateAppointment)
	body := `{
		"patientId": "` + uuid.NewString() + `",
		"doctorId": "` + uuid.NewString() + `",
		"startsAt": "2026-09-01T10:00:00Z",
		"type": "consultation",
		"totalCost": 200,
		"amountPaid": 50,
		"amountPending": 100
	}`
	w := doJSON(r, "POST", "/api/appointments", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", w.Code, w.Body.String())
	}
	errs := decodeErrors(t, w)
	if len(errs) != 1 || errs[0]["field"] != "amountPending" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestCreateAppointmentRejectsUnknownType(t *testing.T) {
	r := newHandlerTest("POST", "/api/appointments", CreateAppointment)
	body := `{
		"patientId": "` + uuid.NewString() + `",
		"doctorId": "` + uuid.NewString() + `",
		"startsAt": "2026-09-01T10:00:00Z",
		"type": "walk_in"
	}`
	w := doJSON(r, "POST", "/api/appointments", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	errs := decodeErrors(t, w)
	if len(errs) != 1 || errs[0]["field"] != "type" {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestAdjustStockRequiresDeltaAndReason(t *testing.T) {
	r := newHandlerTest("POST", "/api/medicines/:id/adjust-stock", AdjustMedicineStock)
	w := doJSON(r, "POST", "/api/medicines/"+uuid.NewString()+"/adjust-stock", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	errs := decodeErrors(t, w)
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}
