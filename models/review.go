package models

import "time"

// Review is a customer's feedback on a completed booking. At most one review
// exists per booking.
type Review struct {
	ID           string     `bson:"id" json:"id"`
	BookingID    string     `bson:"bookingId" json:"bookingId"`
	CustomerID   string     `bson:"customerId" json:"customerId"`
	ProviderID   string     `bson:"providerId" json:"providerId"`
	Rating       int        `bson:"rating" json:"rating"` // 1..5
	Comment      string     `bson:"comment,omitempty" json:"comment,omitempty"`
	Response     string     `bson:"response,omitempty" json:"response,omitempty"`
	ResponseDate *time.Time `bson:"responseDate,omitempty" json:"responseDate,omitempty"`
	IsVerified   bool       `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ReviewDetail carries the reviewing customer's public fields for list reads.
type ReviewDetail struct {
	Review
	Customer *UserSummary `json:"customer,omitempty"`
}
