package model

import "time"

// BusinessHours is the weekly default service window for one weekday.
// Weekday follows time.Weekday naming (Sunday..Saturday).
type BusinessHours struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty"`
	Weekday         string    `json:"weekday" bson:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	KitchenOpens    string    `json:"kitchen_opens" bson:"kitchen_opens" validate:"required_unless=IsClosed true,omitempty,datetime=15:04"`
	KitchenCloses   string    `json:"kitchen_closes" bson:"kitchen_closes" validate:"required_unless=IsClosed true,omitempty,datetime=15:04"`
	IsClosed        bool      `json:"is_closed" bson:"is_closed"`
	IsKitchenClosed bool      `json:"is_kitchen_closed" bson:"is_kitchen_closed"`
	Note            string    `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=200"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SpecialHours fully overrides BusinessHours for a single date when present.
type SpecialHours struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty"`
	Date            string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	KitchenOpens    string    `json:"kitchen_opens" bson:"kitchen_opens" validate:"required_unless=IsClosed true,omitempty,datetime=15:04"`
	KitchenCloses   string    `json:"kitchen_closes" bson:"kitchen_closes" validate:"required_unless=IsClosed true,omitempty,datetime=15:04"`
	IsClosed        bool      `json:"is_closed" bson:"is_closed"`
	IsKitchenClosed bool      `json:"is_kitchen_closed" bson:"is_kitchen_closed"`
	Note            string    `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=200"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// KitchenHours is the effective service window resolved for one date.
type KitchenHours struct {
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
}
