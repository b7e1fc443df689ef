package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentSucceeded PaymentStatus = "succeeded"
)

type ChargeType string

const (
	ChargeTableDeposit ChargeType = "table_deposit"
)

// Payment is a single charge attempt against a table booking.
type Payment struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TableBookingID string        `json:"table_booking_id" bson:"table_booking_id" validate:"required,mongodb"`
	CustomerID     string        `json:"customer_id" bson:"customer_id" validate:"required"`
	ChargeType     ChargeType    `json:"charge_type" bson:"charge_type" validate:"required,oneof=table_deposit"`
	AmountCents    int64         `json:"amount_cents" bson:"amount_cents" validate:"required,min=0"`
	Status         PaymentStatus `json:"status" bson:"status" validate:"required,oneof=pending failed succeeded"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CardCaptureStatus string

const (
	CardCapturePending  CardCaptureStatus = "pending"
	CardCaptureExpired  CardCaptureStatus = "expired"
	CardCaptureCaptured CardCaptureStatus = "captured"
)

// CardCapture is a pending card-verification record tied to a table booking.
type CardCapture struct {
	ID             string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TableBookingID string            `json:"table_booking_id" bson:"table_booking_id" validate:"required,mongodb"`
	Status         CardCaptureStatus `json:"status" bson:"status" validate:"required,oneof=pending expired captured"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
}
