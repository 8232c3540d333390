package models

import "time"

// Payment adjustment statuses. Exactly one resolution per adjustment:
// pending -> approved | rejected, never reversed.
const (
	AdjustmentStatusPending  = "pending"
	AdjustmentStatusApproved = "approved"
	AdjustmentStatusRejected = "rejected"
)

// PaymentAdjustment is a provider-initiated request for additional payment
// against an active booking, resolved by the booking's customer.
type PaymentAdjustment struct {
	ID          string     `bson:"id" json:"id"`
	BookingID   string     `bson:"bookingId" json:"bookingId"`
	RequestedBy string     `bson:"requestedBy" json:"requestedBy"` // provider's user id
	Amount      float64    `bson:"amount" json:"amount"`
	Reason      string     `bson:"reason" json:"reason"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Status      string     `bson:"status" json:"status"`
	RespondedAt *time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
