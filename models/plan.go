package models

import "time"

// SubscriptionPlan is a billing tier a provider can subscribe to. Billing
// itself is handled by Stripe; the core reads the plan's commission rate when
// pricing a booking.
type SubscriptionPlan struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	StripePriceID      string    `bson:"stripePriceId" json:"stripePriceId"`
	Price              float64   `bson:"price" json:"price"`
	Interval           string    `bson:"interval" json:"interval"` // "month" or "year"
	Features           []string  `bson:"features" json:"features"`
	CommissionRate     float64   `bson:"commissionRate" json:"commissionRate"`
	MaxServiceRequests int       `bson:"maxServiceRequests" json:"maxServiceRequests"`
	IsActive           bool      `bson:"isActive" json:"isActive"`
	DisplayOrder       int       `bson:"displayOrder" json:"displayOrder"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
