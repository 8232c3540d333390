package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	notificationRepo "servicehub/database/repository/notification"
	"servicehub/services/adjustment"
	"servicehub/services/booking"
	"servicehub/services/review"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Logger: zap.NewNop()}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"booking not found", booking.ErrNotFound, http.StatusNotFound},
		{"wrapped booking not found", fmt.Errorf("context: %w", booking.ErrNotFound), http.StatusNotFound},
		{"adjustment not found", adjustment.ErrNotFound, http.StatusNotFound},
		{"adjustment booking not found", adjustment.ErrBookingNotFound, http.StatusNotFound},
		{"review not found", review.ErrNotFound, http.StatusNotFound},
		{"notification not found", notificationRepo.ErrNotFound, http.StatusNotFound},
		{"booking forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"adjustment forbidden", adjustment.ErrForbidden, http.StatusForbidden},
		{"review forbidden", review.ErrForbidden, http.StatusForbidden},
		{"invalid transition", booking.ErrInvalidTransition, http.StatusBadRequest},
		{"provider unavailable", booking.ErrProviderUnavailable, http.StatusBadRequest},
		{"invalid booking state", adjustment.ErrInvalidBookingState, http.StatusBadRequest},
		{"already resolved", adjustment.ErrAlreadyResolved, http.StatusBadRequest},
		{"invalid action", adjustment.ErrInvalidAction, http.StatusBadRequest},
		{"not completed", review.ErrNotCompleted, http.StatusBadRequest},
		{"duplicate review", review.ErrDuplicate, http.StatusBadRequest},
		{"invalid rating", review.ErrInvalidRating, http.StatusBadRequest},
		{"unexpected error", errors.New("store exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			hb.respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Logger: zap.NewNop()}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	hb.respondError(c, errors.New("mongo: connection refused at 10.0.0.4"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.4")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
