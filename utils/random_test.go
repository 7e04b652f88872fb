package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(6)
	if len(s) != 6 {
		t.Fatalf("got length %d, want 6", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r) {
			t.Errorf("unexpected character %q", r)
		}
	}

	// Collisions over a handful of draws would point at a broken source
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateRandomString(8)] = true
	}
	if len(seen) < 45 {
		t.Errorf("too many collisions: %d unique out of 50", len(seen))
	}
}
