package service

import (
	"testing"

	"tably/pkg/config"
)

func testVenue() config.VenueCapacity {
	return config.VenueCapacity{
		DefaultMaxCovers:   50,
		SlotIntervalMin:    30,
		DefaultDurationMin: 120,
	}
}

func TestRemainingCapacity_EmptyDay(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	if got := calc.RemainingCapacity("18:00", nil); got != 50 {
		t.Errorf("expected full capacity 50, got %d", got)
	}
}

func TestRemainingCapacity_BookingOccupiesItsWholeDuration(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	bookings := []BookingInterval{
		{Start: "13:00", DurationMin: 120, PartySize: 50},
	}

	// 13:00-15:00 is fully booked out.
	for _, slot := range []string{"13:00", "13:30", "14:00", "14:30"} {
		if got := calc.RemainingCapacity(slot, bookings); got != 0 {
			t.Errorf("slot %s: expected 0 remaining, got %d", slot, got)
		}
	}

	// The booking ends at 15:00, so the 15:00 slot is free again.
	if got := calc.RemainingCapacity("15:00", bookings); got != 50 {
		t.Errorf("slot 15:00: expected 50 remaining, got %d", got)
	}
}

func TestRemainingCapacity_TouchingEndpointsDoNotOverlap(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())

	// Ends exactly when the slot starts.
	before := []BookingInterval{{Start: "16:00", DurationMin: 120, PartySize: 10}}
	if got := calc.RemainingCapacity("18:00", before); got != 50 {
		t.Errorf("booking ending at slot start must not count, got %d remaining", got)
	}

	// Starts exactly when the slot ends.
	after := []BookingInterval{{Start: "18:30", DurationMin: 120, PartySize: 10}}
	if got := calc.RemainingCapacity("18:00", after); got != 50 {
		t.Errorf("booking starting at slot end must not count, got %d remaining", got)
	}

	// Starts one minute before the slot ends.
	overlapping := []BookingInterval{{Start: "18:29", DurationMin: 120, PartySize: 10}}
	if got := calc.RemainingCapacity("18:00", overlapping); got != 40 {
		t.Errorf("booking starting inside the slot must count, got %d remaining", got)
	}
}

func TestRemainingCapacity_SumsOverlappingParties(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	bookings := []BookingInterval{
		{Start: "18:00", DurationMin: 120, PartySize: 12},
		{Start: "18:30", DurationMin: 90, PartySize: 8},
		{Start: "20:30", DurationMin: 60, PartySize: 20},
	}
	if got := calc.RemainingCapacity("18:30", bookings); got != 30 {
		t.Errorf("expected 30 remaining at 18:30, got %d", got)
	}
}

func TestRemainingCapacity_DefaultDurationApplied(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	bookings := []BookingInterval{{Start: "18:00", PartySize: 10}}

	// Default 120 min duration keeps 19:30 occupied.
	if got := calc.RemainingCapacity("19:30", bookings); got != 40 {
		t.Errorf("expected default duration to cover 19:30, got %d remaining", got)
	}
	if got := calc.RemainingCapacity("20:00", bookings); got != 50 {
		t.Errorf("expected 20:00 to be free, got %d remaining", got)
	}
}

func TestRemainingCapacity_PolicyDurationAppliedPerType(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	bookings := []BookingInterval{{Start: "18:00", Type: BookingTypeLargeGroup, PartySize: 10}}

	// Large groups occupy 180 min, not the venue default 120.
	if got := calc.RemainingCapacity("20:30", bookings); got != 40 {
		t.Errorf("expected large group to still occupy 20:30, got %d remaining", got)
	}
	if got := calc.RemainingCapacity("21:00", bookings); got != 50 {
		t.Errorf("expected 21:00 to be free, got %d remaining", got)
	}

	// An explicit duration still wins over the type policy.
	explicit := []BookingInterval{{Start: "18:00", Type: BookingTypeLargeGroup, DurationMin: 60, PartySize: 10}}
	if got := calc.RemainingCapacity("19:00", explicit); got != 50 {
		t.Errorf("explicit duration must override the policy, got %d remaining", got)
	}
}

func TestRemainingCapacity_SlotOverride(t *testing.T) {
	venue := testVenue()
	venue.SlotOverrides = map[string]int{"21:00": 20}
	calc := NewCapacityCalculator(venue)

	bookings := []BookingInterval{{Start: "21:00", DurationMin: 60, PartySize: 15}}
	if got := calc.RemainingCapacity("21:00", bookings); got != 5 {
		t.Errorf("expected override capacity 20-15=5, got %d", got)
	}
	if got := calc.RemainingCapacity("20:00", bookings); got != 50 {
		t.Errorf("override must not leak to other slots, got %d", got)
	}
}

func TestRemainingCapacity_NeverNegative(t *testing.T) {
	calc := NewCapacityCalculator(testVenue())
	bookings := []BookingInterval{
		{Start: "18:00", DurationMin: 120, PartySize: 40},
		{Start: "18:00", DurationMin: 120, PartySize: 40},
	}
	if got := calc.RemainingCapacity("18:00", bookings); got != 0 {
		t.Errorf("over-booked slot must report 0, got %d", got)
	}
}
