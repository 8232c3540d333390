package adjustment

import "errors"

var (
	// ErrNotFound indicates the adjustment id resolved to nothing.
	ErrNotFound = errors.New("payment adjustment not found")
	// ErrBookingNotFound indicates the adjustment's booking id resolved to
	// nothing.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrForbidden indicates the actor has no rights over the adjustment.
	ErrForbidden = errors.New("not authorized for this payment adjustment")
	// ErrInvalidBookingState indicates the booking is not adjustable.
	ErrInvalidBookingState = errors.New("booking is not in an adjustable status")
	// ErrAlreadyResolved indicates the adjustment was already approved or
	// rejected.
	ErrAlreadyResolved = errors.New("payment adjustment already resolved")
	// ErrInvalidAction indicates the response action is neither approve nor
	// reject.
	ErrInvalidAction = errors.New("invalid adjustment action")
)
