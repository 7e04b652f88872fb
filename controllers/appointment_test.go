package controllers

import "testing"

func TestPaymentFieldErrors(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		paid       float64
		pending    float64
		wantFields []string
	}{
		{"fully paid", 100, 100, 0, nil},
		{"fully pending", 100, 0, 100, nil},
		{"split", 150.50, 50.25, 100.25, nil},
		{"zero cost", 0, 0, 0, nil},
		{"within cent epsilon", 100, 99.995, 0.005, nil},
		{"paid exceeds total", 100, 120, 0, []string{"amountPaid", "amountPending"}},
		{"sum below total", 100, 40, 40, []string{"amountPending"}},
		{"sum above total", 100, 60, 60, []string{"amountPending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := paymentFieldErrors(tt.total, tt.paid, tt.pending)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.wantFields), len(errs), errs)
			}
			for i, f := range tt.wantFields {
				if errs[i].Field != f {
					t.Errorf("error %d: got field %q, want %q", i, errs[i].Field, f)
				}
			}
		})
	}
}
