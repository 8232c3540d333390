package models

import "time"

// Subscription statuses on a provider profile. Bookings may only be created
// against providers whose status is active or trial.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusTrial     = "trial"
	SubscriptionStatusInactive  = "inactive"
	SubscriptionStatusCancelled = "cancelled"
)

// ProviderProfile is the service-offering side of a user account. The rating
// and counter fields are derived state: rating/totalReviews are written only
// by the review aggregator, completedBookings only by the booking lifecycle.
type ProviderProfile struct {
	ID                    string     `bson:"id" json:"id"`
	UserID                string     `bson:"userId" json:"userId"`
	BusinessName          string     `bson:"businessName" json:"businessName"`
	Bio                   string     `bson:"bio,omitempty" json:"bio,omitempty"`
	ServiceCategoryID     string     `bson:"serviceCategoryId" json:"serviceCategoryId"`
	City                  string     `bson:"city,omitempty" json:"city,omitempty"`
	State                 string     `bson:"state,omitempty" json:"state,omitempty"`
	HourlyRate            float64    `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	YearsOfExperience     int        `bson:"yearsOfExperience,omitempty" json:"yearsOfExperience,omitempty"`
	SubscriptionStatus    string     `bson:"subscriptionStatus" json:"subscriptionStatus"`
	SubscriptionPlanID    string     `bson:"subscriptionPlanId,omitempty" json:"subscriptionPlanId,omitempty"`
	SubscriptionStartDate *time.Time `bson:"subscriptionStartDate,omitempty" json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `bson:"subscriptionEndDate,omitempty" json:"subscriptionEndDate,omitempty"`
	StripeCustomerID      string     `bson:"stripeCustomerId,omitempty" json:"-"`
	StripeSubscriptionID  string     `bson:"stripeSubscriptionId,omitempty" json:"-"`
	Rating                float64    `bson:"rating" json:"rating"`
	TotalReviews          int        `bson:"totalReviews" json:"totalReviews"`
	CompletedBookings     int        `bson:"completedBookings" json:"completedBookings"`
	IsVerified            bool       `bson:"isVerified" json:"isVerified"`
	CreatedAt             time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Bookable reports whether new bookings may target this provider.
func (p *ProviderProfile) Bookable() bool {
	return p.SubscriptionStatus == SubscriptionStatusActive ||
		p.SubscriptionStatus == SubscriptionStatusTrial
}

// ProviderSummary is the projection embedded in booking detail reads.
type ProviderSummary struct {
	ID           string       `bson:"id" json:"id"`
	BusinessName string       `bson:"businessName" json:"businessName"`
	Rating       float64      `bson:"rating" json:"rating"`
	User         *UserSummary `bson:"user,omitempty" json:"user,omitempty"`
}
