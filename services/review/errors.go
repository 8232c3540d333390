package review

import "errors"

var (
	// ErrNotFound indicates the review id resolved to nothing.
	ErrNotFound = errors.New("review not found")
	// ErrBookingNotFound indicates the reviewed booking id resolved to
	// nothing.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrForbidden indicates the actor has no rights over the review.
	ErrForbidden = errors.New("not authorized for this review")
	// ErrNotCompleted indicates the booking has not reached the completed
	// status yet.
	ErrNotCompleted = errors.New("booking is not completed")
	// ErrDuplicate indicates the booking already has a review.
	ErrDuplicate = errors.New("booking already has a review")
	// ErrInvalidRating indicates the rating falls outside 1 to 5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
