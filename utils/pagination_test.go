package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	c := testContext("/api/patients")
	page, limit, offset := ParsePagination(c)
	if page != 1 || limit != 20 || offset != 0 {
		t.Errorf("got page=%d limit=%d offset=%d", page, limit, offset)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	c := testContext("/api/patients?page=3&limit=10")
	page, limit, offset := ParsePagination(c)
	if page != 3 || limit != 10 || offset != 20 {
		t.Errorf("got page=%d limit=%d offset=%d", page, limit, offset)
	}
}

func TestParsePaginationCapsLimit(t *testing.T) {
	c := testContext("/api/patients?limit=5000")
	_, limit, _ := ParsePagination(c)
	if limit != MaxLimit {
		t.Errorf("got limit=%d, want %d", limit, MaxLimit)
	}
}

func TestParsePaginationIgnoresGarbage(t *testing.T) {
	c := testContext("/api/patients?page=-1&limit=abc")
	page, limit, _ := ParsePagination(c)
	if page != 1 || limit != 20 {
		t.Errorf("got page=%d limit=%d", page, limit)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPages != 3 {
		t.Errorf("got totalPages=%d, want 3", p.TotalPages)
	}
	if p.Total != 41 || p.Page != 2 || p.Limit != 20 {
		t.Errorf("unexpected pagination block: %+v", p)
	}

	empty := NewPagination(1, 20, 0)
	if empty.TotalPages != 1 {
		t.Errorf("got totalPages=%d for empty set, want 1", empty.TotalPages)
	}

	exact := NewPagination(1, 20, 40)
	if exact.TotalPages != 2 {
		t.Errorf("got totalPages=%d, want 2", exact.TotalPages)
	}
}
