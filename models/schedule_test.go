package models

import "testing"

func TestIsWeekDay(t *testing.T) {
	if !IsWeekDay("monday") || !IsWeekDay("sunday") {
		t.Error("expected lowercase weekday names to be accepted")
	}
	if IsWeekDay("Monday") || IsWeekDay("mon") || IsWeekDay("") {
		t.Error("expected non-canonical day names to be rejected")
	}
}

func TestValidateScheduleAcceptsWellFormedInput(t *testing.T) {
	input := ScheduleInput{
		WorkingDays: []WorkingDayInput{
			{Day: "monday", StartTime: "09:00", EndTime: "17:00"},
			{Day: "tuesday", StartTime: "10:00", EndTime: "18:30"},
		},
		BreakTimes: []BreakTimeInput{
			{Day: "monday", StartTime: "13:00", EndTime: "14:00"},
		},
		UnavailableDates: []UnavailableDateInput{
			{Date: "2026-09-01", Reason: "conference"},
		},
	}
	if errs := ValidateSchedule(input); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateScheduleCollectsAllErrors(t *testing.T) {
	input := ScheduleInput{
		WorkingDays: []WorkingDayInput{
			{Day: "funday", StartTime: "9:00", EndTime: "17:00"},
			{Day: "monday", StartTime: "18:00", EndTime: "09:00"},
			{Day: "monday", StartTime: "09:00", EndTime: "17:00"},
		},
		UnavailableDates: []UnavailableDateInput{
			{Date: "01/09/2026"},
			{Date: "2026-09-01"},
			{Date: "2026-09-01"},
		},
	}
	errs := ValidateSchedule(input)

	want := map[string]string{
		"workingDays[0].day":       "must be a lowercase weekday name",
		"workingDays[0].startTime": "must be in HH:MM format",
		"workingDays[1].endTime":   "must be after startTime",
		"workingDays[2].day":       "duplicate working day",
		"unavailableDates[0].date": "must be in YYYY-MM-DD format",
		"unavailableDates[2].date": "duplicate unavailable date",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for _, fe := range errs {
		if want[fe.Field] != fe.Message {
			t.Errorf("unexpected error %s: %q", fe.Field, fe.Message)
		}
	}
}

func TestValidateScheduleBreakTimeOrdering(t *testing.T) {
	input := ScheduleInput{
		BreakTimes: []BreakTimeInput{
			{Day: "friday", StartTime: "14:00", EndTime: "14:00"},
		},
	}
	errs := ValidateSchedule(input)
	if len(errs) != 1 || errs[0].Field != "breakTimes[0].endTime" {
		t.Errorf("expected single ordering error, got %v", errs)
	}
}
