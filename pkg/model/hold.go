package model

import "time"

type HoldType string

const (
	HoldTypePayment     HoldType = "payment_hold"
	HoldTypeCardCapture HoldType = "card_capture_hold"
	HoldTypeWaitlist    HoldType = "waitlist_hold"
)

type HoldStatus string

const (
	HoldStatusActive   HoldStatus = "active"
	HoldStatusExpired  HoldStatus = "expired"
	HoldStatusReleased HoldStatus = "released"
)

// Hold is a time-bounded claim on capacity or a payment/verification window.
// Exactly one owning reference must be set; at most one active hold may exist
// per (owner, hold_type), enforced by the conditional write discipline.
type Hold struct {
	ID              string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HoldType        HoldType   `json:"hold_type" bson:"hold_type" validate:"required,oneof=payment_hold card_capture_hold waitlist_hold"`
	Status          HoldStatus `json:"status" bson:"status" validate:"required,oneof=active expired released"`
	ExpiresAt       time.Time  `json:"expires_at" bson:"expires_at" validate:"required"`
	EventBookingID  string     `json:"event_booking_id,omitempty" bson:"event_booking_id,omitempty" validate:"omitempty,mongodb"`
	TableBookingID  string     `json:"table_booking_id,omitempty" bson:"table_booking_id,omitempty" validate:"omitempty,mongodb"`
	WaitlistOfferID string     `json:"waitlist_offer_id,omitempty" bson:"waitlist_offer_id,omitempty" validate:"omitempty,mongodb"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// HasOneOwner reports whether exactly one owning reference is set.
func (h *Hold) HasOneOwner() bool {
	owners := 0
	for _, id := range []string{h.EventBookingID, h.TableBookingID, h.WaitlistOfferID} {
		if id != "" {
			owners++
		}
	}
	return owners == 1
}
