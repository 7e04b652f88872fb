package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+911234567890", "9876543210", "+1 (555) 123-4567"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "abc", "+", "0123456", "123456789012345678"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	valid := []string{"#000000", "#FFffFF", "#1a2B3c"}
	for _, c := range valid {
		if !ValidateHexColor(c) {
			t.Errorf("expected %q to be valid", c)
		}
	}

	invalid := []string{"", "000000", "#fff", "#GGGGGG", "#1234567"}
	for _, c := range invalid {
		if ValidateHexColor(c) {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestValidateClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if !ValidateClockTime(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}

	invalid := []string{"", "24:00", "9:30", "12:60", "12:5", "12-30"}
	for _, v := range invalid {
		if ValidateClockTime(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2026-01-01", "2026-12-31"}
	for _, v := range valid {
		if !ValidateDate(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}

	invalid := []string{"", "2026-13-01", "2026-00-10", "2026-01-32", "01-01-2026"}
	for _, v := range invalid {
		if ValidateDate(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}

func TestClockTimeBefore(t *testing.T) {
	if !ClockTimeBefore("09:00", "17:00") {
		t.Error("09:00 should be before 17:00")
	}
	if ClockTimeBefore("17:00", "09:00") {
		t.Error("17:00 should not be before 09:00")
	}
	if ClockTimeBefore("09:00", "09:00") {
		t.Error("equal times should not be before each other")
	}
}
