package model

import "time"

type WaitlistEntryStatus string

const (
	WaitlistEntryWaiting   WaitlistEntryStatus = "waiting"
	WaitlistEntryOffered   WaitlistEntryStatus = "offered"
	WaitlistEntryExpired   WaitlistEntryStatus = "expired"
	WaitlistEntrySeated    WaitlistEntryStatus = "seated"
	WaitlistEntryCancelled WaitlistEntryStatus = "cancelled"
)

type WaitlistOfferStatus string

const (
	WaitlistOfferSent     WaitlistOfferStatus = "sent"
	WaitlistOfferAccepted WaitlistOfferStatus = "accepted"
	WaitlistOfferExpired  WaitlistOfferStatus = "expired"
	WaitlistOfferDeclined WaitlistOfferStatus = "declined"
)

// WaitlistEntry is a customer waiting for a sold-out slot.
type WaitlistEntry struct {
	ID         string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerID string              `json:"customer_id" bson:"customer_id" validate:"required"`
	Date       string              `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time       string              `json:"time" bson:"time" validate:"required,datetime=15:04"`
	PartySize  int                 `json:"party_size" bson:"party_size" validate:"required,min=1,max=200"`
	Status     WaitlistEntryStatus `json:"status" bson:"status" validate:"required,oneof=waiting offered expired seated cancelled"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// WaitlistOffer is a time-limited invitation sent to one entry when capacity
// frees up.
type WaitlistOffer struct {
	ID              string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	WaitlistEntryID string              `json:"waitlist_entry_id" bson:"waitlist_entry_id" validate:"required,mongodb"`
	Status          WaitlistOfferStatus `json:"status" bson:"status" validate:"required,oneof=sent accepted expired declined"`
	ExpiresAt       time.Time           `json:"expires_at" bson:"expires_at" validate:"required"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at" validate:"omitempty"`
}
