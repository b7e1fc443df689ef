package service

import "tably/pkg/config"

// BookingInterval is the occupancy footprint of one existing booking.
// DurationMin of zero means the duration assumption for the booking's
// type applies, or the venue default when the type is unknown.
type BookingInterval struct {
	Start       string
	Type        string
	DurationMin int
	PartySize   int
}

// CapacityCalculator computes remaining covers per slot from existing
// bookings. It is the single place the overlap predicate lives.
type CapacityCalculator struct {
	venue config.VenueCapacity
}

func NewCapacityCalculator(venue config.VenueCapacity) *CapacityCalculator {
	return &CapacityCalculator{venue: venue}
}

// overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any time. Touching endpoints do not overlap, so
// a booking ending exactly when a slot starts leaves the slot free.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// bookingDuration resolves the minutes a booking occupies. Explicit
// durations win, then the booking type's policy, then the venue default.
func (c *CapacityCalculator) bookingDuration(b BookingInterval) int {
	if b.DurationMin > 0 {
		return b.DurationMin
	}
	if b.Type != "" {
		return PolicyFor(b.Type).DurationMin
	}
	return c.venue.DefaultDurationMin
}

// RemainingCapacity returns the covers still free during the slot
// starting at slot (HH:MM). The result is never negative.
func (c *CapacityCalculator) RemainingCapacity(slot string, bookings []BookingInterval) int {
	slotStart, err := minuteOfDay(slot)
	if err != nil {
		return 0
	}
	slotEnd := slotStart + c.venue.SlotIntervalMin

	occupied := 0
	for _, b := range bookings {
		bStart, err := minuteOfDay(b.Start)
		if err != nil {
			continue
		}
		if overlaps(bStart, bStart+c.bookingDuration(b), slotStart, slotEnd) {
			occupied += b.PartySize
		}
	}

	remaining := c.venue.MaxCoversAt(slot) - occupied
	if remaining < 0 {
		return 0
	}
	return remaining
}
