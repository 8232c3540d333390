package booking

import "errors"

var (
	// ErrNotFound indicates the booking id resolved to nothing.
	ErrNotFound = errors.New("booking not found")
	// ErrProviderUnavailable indicates the provider's subscription does not
	// permit new bookings.
	ErrProviderUnavailable = errors.New("provider is not accepting bookings")
	// ErrInvalidTransition indicates the requested status change is illegal
	// from the booking's current status.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrForbidden indicates the actor has no rights over the booking.
	ErrForbidden = errors.New("not authorized for this booking")
)
