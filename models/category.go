package models

// ServiceCategory is a bookable service type (cleaning, plumbing, ...).
type ServiceCategory struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	IsActive    bool   `bson:"isActive" json:"isActive"`
}
