package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func recordJSON(t *testing.T, write func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return w, body
}

func TestRespondWithErrorEnvelope(t *testing.T) {
	w, body := recordJSON(t, func(c *gin.Context) {
		RespondWithError(c, http.StatusNotFound, "Patient not found")
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
	if body["success"] != false || body["message"] != "Patient not found" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestRespondWithFieldErrorsEnvelope(t *testing.T) {
	w, body := recordJSON(t, func(c *gin.Context) {
		RespondWithFieldErrors(c, []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "color", Message: "must be a hex color like #A1B2C3"},
		})
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", w.Code)
	}
	if body["message"] != "Validation failed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", body["errors"])
	}
	first := errs[0].(map[string]interface{})
	if first["field"] != "name" || first["message"] != "is required" {
		t.Errorf("unexpected first error: %v", first)
	}
}

func TestRespondWithPaginationEnvelope(t *testing.T) {
	w, body := recordJSON(t, func(c *gin.Context) {
		RespondWithPagination(c, "Patients retrieved", []string{}, NewPagination(1, 20, 0))
	})
	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", w.Code)
	}
	if body["success"] != true {
		t.Errorf("unexpected envelope: %v", body)
	}
	if _, ok := body["pagination"]; !ok {
		t.Error("missing pagination block")
	}
}

func TestBindingErrorsCollectsEveryFailure(t *testing.T) {
	type input struct {
		Name  string `validate:"required,min=2"`
		Email string `validate:"required,email"`
		Role  string `validate:"oneof=admin doctor"`
	}
	err := validator.New().Struct(input{Email: "not-an-email", Role: "nurse"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	errs := BindingErrors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
	}
	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	if byField["name"] != "is required" {
		t.Errorf("name: %q", byField["name"])
	}
	if byField["email"] != "must be a valid email address" {
		t.Errorf("email: %q", byField["email"])
	}
	if byField["role"] != "must be one of: admin doctor" {
		t.Errorf("role: %q", byField["role"])
	}
}

func TestBindingErrorsFallsBackToBody(t *testing.T) {
	errs := BindingErrors(json.Unmarshal([]byte("{"), &struct{}{}))
	if len(errs) != 1 || errs[0].Field != "body" {
		t.Errorf("unexpected fallback: %v", errs)
	}
}
