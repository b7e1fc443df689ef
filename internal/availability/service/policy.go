package service

// Booking types accepted by the availability endpoints.
const (
	BookingTypeRegular     = "regular"
	BookingTypeSundayLunch = "sunday_lunch"
	BookingTypeLargeGroup  = "large_group"
	BookingTypeEvent       = "event"
)

// BookingPolicy collects every per-type rule in one table so new types
// only touch this file.
type BookingPolicy struct {
	MinNoticeHours     int
	MaxAdvanceDays     int
	DurationMin        int
	RequiresPrepayment bool

	// SundayLunchCutover closes Sunday slots once the preceding
	// Saturday 13:00 has passed in the venue timezone.
	SundayLunchCutover bool
}

var bookingPolicies = map[string]BookingPolicy{
	BookingTypeRegular: {
		MinNoticeHours: 2,
		MaxAdvanceDays: 56,
		DurationMin:    120,
	},
	BookingTypeSundayLunch: {
		MinNoticeHours:     2,
		MaxAdvanceDays:     56,
		DurationMin:        150,
		RequiresPrepayment: true,
		SundayLunchCutover: true,
	},
	BookingTypeLargeGroup: {
		MinNoticeHours:     24,
		MaxAdvanceDays:     56,
		DurationMin:        180,
		RequiresPrepayment: true,
	},
	BookingTypeEvent: {
		MinNoticeHours:     48,
		MaxAdvanceDays:     84,
		DurationMin:        240,
		RequiresPrepayment: true,
	},
}

// PolicyFor returns the policy for a booking type. Unknown or empty
// types fall back to the regular policy.
func PolicyFor(bookingType string) BookingPolicy {
	if policy, ok := bookingPolicies[bookingType]; ok {
		return policy
	}
	return bookingPolicies[BookingTypeRegular]
}
