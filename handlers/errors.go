package handlers

import (
	"errors"
	"net/http"

	notificationRepo "servicehub/database/repository/notification"
	"servicehub/services/adjustment"
	"servicehub/services/booking"
	"servicehub/services/review"
	"servicehub/services/subscription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var notFoundErrs = []error{
	booking.ErrNotFound,
	adjustment.ErrNotFound,
	adjustment.ErrBookingNotFound,
	review.ErrNotFound,
	review.ErrBookingNotFound,
	notificationRepo.ErrNotFound,
	subscription.ErrProviderNotFound,
	subscription.ErrPlanNotFound,
}

var forbiddenErrs = []error{
	booking.ErrForbidden,
	adjustment.ErrForbidden,
	review.ErrForbidden,
}

var badRequestErrs = []error{
	booking.ErrInvalidTransition,
	booking.ErrProviderUnavailable,
	adjustment.ErrInvalidBookingState,
	adjustment.ErrAlreadyResolved,
	adjustment.ErrInvalidAction,
	review.ErrNotCompleted,
	review.ErrDuplicate,
	review.ErrInvalidRating,
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps a service error onto its HTTP status. Lifecycle and
// authorization errors carry their own message; anything unexpected is
// logged in full and returned as a generic 500.
func (hb *HandlerBundle) respondError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrs):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case matchesAny(err, forbiddenErrs):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case matchesAny(err, badRequestErrs):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		hb.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
