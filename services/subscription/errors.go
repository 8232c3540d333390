package subscription

import "errors"

var (
	// ErrProviderNotFound indicates the actor has no provider profile.
	ErrProviderNotFound = errors.New("provider profile not found")
	// ErrPlanNotFound indicates the plan id resolved to nothing.
	ErrPlanNotFound = errors.New("subscription plan not found")
)
