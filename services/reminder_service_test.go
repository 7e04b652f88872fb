package services

import (
	"testing"

	"clinicpro-backend/models"
)

func TestResolveChannel(t *testing.T) {
	tests := []struct {
		name        string
		whatsapp    bool
		sms         bool
		phone       string
		wantChannel string
		wantOK      bool
	}{
		{"whatsapp enabled, E.164 phone", true, false, "+911234567890", "whatsapp", true},
		{"whatsapp enabled, local phone falls back to sms", true, true, "9876543210", "sms", true},
		{"whatsapp enabled, local phone, sms off", true, false, "9876543210", "", false},
		{"sms only", false, true, "+911234567890", "sms", true},
		{"both switches off", false, false, "+911234567890", "", false},
		{"both enabled prefers whatsapp", true, true, "+911234567890", "whatsapp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clinic := models.Clinic{
				WhatsAppNotifications: tt.whatsapp,
				SMSNotifications:      tt.sms,
			}
			channel, ok := resolveChannel(clinic, tt.phone)
			if ok != tt.wantOK || channel != tt.wantChannel {
				t.Errorf("got (%q, %v), want (%q, %v)", channel, ok, tt.wantChannel, tt.wantOK)
			}
		})
	}
}
