package models

import "time"

// Booking statuses. A booking moves pending -> accepted -> in-progress ->
// completed, with cancelled reachable from any non-terminal status.
const (
	BookingStatusPending    = "pending"
	BookingStatusAccepted   = "accepted"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Payment statuses for a booking.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// NormalizeBookingStatus maps legacy aliases onto the canonical status set.
// Older clients send "confirmed" for the provider-approved state; it is the
// same semantic state as "accepted".
func NormalizeBookingStatus(status string) string {
	if status == "confirmed" {
		return BookingStatusAccepted
	}
	return status
}

// IsTerminalBookingStatus reports whether no further transition is allowed.
func IsTerminalBookingStatus(status string) bool {
	return status == BookingStatusCompleted || status == BookingStatusCancelled
}

// Booking represents one scheduled service engagement between a customer and
// a provider.
type Booking struct {
	ID                 string    `bson:"id" json:"id"`
	CustomerID         string    `bson:"customerId" json:"customerId"`
	ProviderID         string    `bson:"providerId" json:"providerId"`
	ServiceCategoryID  string    `bson:"serviceCategoryId" json:"serviceCategoryId"`
	ServiceDate        string    `bson:"serviceDate" json:"serviceDate"` // "YYYY-MM-DD"
	ServiceTime        string    `bson:"serviceTime" json:"serviceTime"` // "HH:MM"
	Duration           int       `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Address            string    `bson:"address" json:"address"`
	City               string    `bson:"city" json:"city"`
	State              string    `bson:"state" json:"state"`
	ZipCode            string    `bson:"zipCode" json:"zipCode"`
	Description        string    `bson:"description,omitempty" json:"description,omitempty"`
	EstimatedCost      float64   `bson:"estimatedCost" json:"estimatedCost"`
	FinalCost          float64   `bson:"finalCost,omitempty" json:"finalCost,omitempty"`
	Commission         float64   `bson:"commission" json:"commission"`
	Status             string    `bson:"status" json:"status"`
	CancellationReason string    `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	PaymentStatus      string    `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod      string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TransactionID      string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Notes              string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetail is a booking enriched with the related parties for API reads.
type BookingDetail struct {
	Booking
	Customer        *UserSummary     `json:"customer,omitempty"`
	Provider        *ProviderSummary `json:"provider,omitempty"`
	ServiceCategory *ServiceCategory `json:"serviceCategory,omitempty"`
}
