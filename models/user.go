package models

import "time"

// User roles.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
)

// User holds the account fields the booking core reads. Registration and
// authentication live outside this service; users are consumed read-only
// except by their own notification actions.
type User struct {
	ID            string    `bson:"id" json:"id"`
	FirstName     string    `bson:"firstName" json:"firstName"`
	LastName      string    `bson:"lastName" json:"lastName"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PhoneVerified bool      `bson:"phoneVerified" json:"phoneVerified"`
	Role          string    `bson:"role" json:"role"`
	Avatar        string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the public projection embedded in booking and review reads.
type UserSummary struct {
	ID        string `bson:"id" json:"id"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Avatar    string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Summary returns the public projection of a user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}
