package model

import "time"

type BookingStatus string

const (
	StatusPendingPayment     BookingStatus = "pending_payment"
	StatusPendingCardCapture BookingStatus = "pending_card_capture"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCancelled          BookingStatus = "cancelled"
	StatusExpired            BookingStatus = "expired"
	StatusCompleted          BookingStatus = "completed"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusCancelled, StatusExpired, StatusCompleted:
		return true
	}
	return false
}

// CancellationReason is a closed set so cascade handling stays exhaustive.
type CancellationReason string

const (
	ReasonPaymentHoldExpired      CancellationReason = "payment_hold_expired"
	ReasonEventPaymentHoldExpired CancellationReason = "event_booking_payment_hold_expired"
	ReasonCardCaptureExpired      CancellationReason = "card_capture_expired"
	ReasonStaffCancelled          CancellationReason = "staff_cancelled"
	ReasonCustomerCancelled       CancellationReason = "customer_cancelled"
)

// EventBooking is a claim on event seats. Bookings are never deleted, only
// transitioned to a terminal status.
type EventBooking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID    string        `json:"customer_id" bson:"customer_id" validate:"required"`
	Date          string        `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time          string        `json:"time" bson:"time" validate:"required,datetime=15:04"`
	DurationMin   int           `json:"duration_min" bson:"duration_min" validate:"required,min=30,max=480"`
	PartySize     int           `json:"party_size" bson:"party_size" validate:"required,min=1,max=200"`
	Status        BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending_payment pending_card_capture confirmed cancelled expired completed"`
	HoldExpiresAt *time.Time    `json:"hold_expires_at,omitempty" bson:"hold_expires_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// TableBooking is a restaurant table reservation. When it was created as part
// of an event package, EventBookingID links it to the owning event booking.
type TableBooking struct {
	ID                 string             `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID         string             `json:"customer_id" bson:"customer_id" validate:"required"`
	EventBookingID     string             `json:"event_booking_id,omitempty" bson:"event_booking_id,omitempty" validate:"omitempty,mongodb"`
	BookingType        string             `json:"booking_type" bson:"booking_type" validate:"required,max=50"`
	Date               string             `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time               string             `json:"time" bson:"time" validate:"required,datetime=15:04"`
	DurationMin        int                `json:"duration_min" bson:"duration_min" validate:"required,min=30,max=480"`
	PartySize          int                `json:"party_size" bson:"party_size" validate:"required,min=1,max=200"`
	Status             BookingStatus      `json:"status" bson:"status" validate:"required,oneof=pending_payment pending_card_capture confirmed cancelled expired completed"`
	CancellationReason CancellationReason `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty" validate:"omitempty,oneof=payment_hold_expired event_booking_payment_hold_expired card_capture_expired staff_cancelled customer_cancelled"`
	RequiresPrepayment bool               `json:"requires_prepayment" bson:"requires_prepayment"`
	HoldExpiresAt      *time.Time         `json:"hold_expires_at,omitempty" bson:"hold_expires_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at" validate:"omitempty"`
}
