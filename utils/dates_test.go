package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 8, 23, 15, 42, 10, 0, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC)
	got := EndOfDay(in)
	want := time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 8, 20, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 23, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := DaysBetween(end, start); got != -3 {
		t.Errorf("got %d, want -3", got)
	}
	if got := DaysBetween(start, start); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
