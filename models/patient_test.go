package models

import (
	"reflect"
	"strings"
	"testing"
)

// Soft deletes keep the row around, so the clinic-scoped unique indexes must
// be partial or a re-created record would trip over its deleted predecessor.
func assertPartialUniqueIndex(t *testing.T, model interface{}, field string) {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	if !ok {
		t.Fatalf("field %s not found", field)
	}
	tag := f.Tag.Get("gorm")
	if !strings.Contains(tag, "uniqueIndex") {
		t.Fatalf("%s: expected a uniqueIndex tag, got %q", field, tag)
	}
	if !strings.Contains(tag, "where:deleted_at IS NULL") {
		t.Errorf("%s: unique index must exclude soft-deleted rows, got %q", field, tag)
	}
}

func TestPatientPhoneIndexExcludesSoftDeleted(t *testing.T) {
	assertPartialUniqueIndex(t, Patient{}, "ClinicID")
}

func TestCategoryNameIndexExcludesSoftDeleted(t *testing.T) {
	assertPartialUniqueIndex(t, ServiceCategory{}, "ClinicID")
}
