package model

import "testing"

func TestBookingStatus_Terminal(t *testing.T) {
	terminal := []BookingStatus{StatusCancelled, StatusExpired, StatusCompleted}
	for _, status := range terminal {
		if !status.Terminal() {
			t.Errorf("%s should be terminal", status)
		}
	}

	live := []BookingStatus{StatusPendingPayment, StatusPendingCardCapture, StatusConfirmed}
	for _, status := range live {
		if status.Terminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestHold_HasOneOwner(t *testing.T) {
	tests := []struct {
		name string
		hold Hold
		want bool
	}{
		{"no owner", Hold{}, false},
		{"event owner", Hold{EventBookingID: "ev1"}, true},
		{"table owner", Hold{TableBookingID: "tb1"}, true},
		{"offer owner", Hold{WaitlistOfferID: "of1"}, true},
		{"two owners", Hold{EventBookingID: "ev1", TableBookingID: "tb1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hold.HasOneOwner(); got != tt.want {
				t.Errorf("HasOneOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}
