package models

import "testing"

func TestAppointmentTypeIsValid(t *testing.T) {
	for _, at := range []AppointmentType{TypeConsultation, TypeFollowUp, TypeProcedure, TypeEmergency} {
		if !at.IsValid() {
			t.Errorf("expected %q to be valid", at)
		}
	}
	for _, at := range []AppointmentType{"", "checkup", "CONSULTATION"} {
		if at.IsValid() {
			t.Errorf("expected %q to be invalid", at)
		}
	}
}

func TestAppointmentStatusIsValid(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []AppointmentStatus{"", "done", "Scheduled"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
