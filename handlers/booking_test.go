package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingService struct {
	created *models.Booking
	err     error

	gotCustomerID string
	gotRequest    booking.CreateBookingRequest
}

func (s *stubBookingService) Create(_ context.Context, customerID string, req booking.CreateBookingRequest) (*models.Booking, error) {
	s.gotCustomerID = customerID
	s.gotRequest = req
	return s.created, s.err
}

func (s *stubBookingService) UpdateStatus(_ context.Context, _, _, _ string, _ booking.UpdateStatusRequest) (*models.Booking, error) {
	return s.created, s.err
}

func (s *stubBookingService) List(_ context.Context, _, _, _ string) ([]models.Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) GetByID(_ context.Context, _, _ string) (*models.BookingDetail, error) {
	return nil, s.err
}

func bookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Bookings: svc, Logger: zap.NewNop()}
	r := gin.New()
	r.POST("/api/bookings", func(c *gin.Context) {
		// Stand-in for the JWT middleware.
		c.Set(middleware.ContextUserID, "cust-1")
		c.Set(middleware.ContextRole, models.RoleCustomer)
	}, hb.CreateBookingHandler)
	return r
}

func TestCreateBookingHandlerSuccess(t *testing.T) {
	svc := &stubBookingService{created: &models.Booking{ID: "bk-1", Status: models.BookingStatusPending}}
	r := bookingRouter(svc)

	body := `{
		"providerId": "prov-1",
		"serviceCategoryId": "cat-1",
		"serviceDate": "2026-09-15",
		"serviceTime": "10:00",
		"address": "12 Main St",
		"city": "Springfield",
		"state": "IL",
		"zipCode": "62704",
		"estimatedCost": 100
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cust-1", svc.gotCustomerID)
	assert.Equal(t, "prov-1", svc.gotRequest.ProviderID)

	var resp struct {
		Message string         `json:"message"`
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, "bk-1", resp.Booking.ID)
}

func TestCreateBookingHandlerRejectsBadPayload(t *testing.T) {
	svc := &stubBookingService{}
	r := bookingRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"providerId": ""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.gotCustomerID)
}

func TestCreateBookingHandlerMapsGateFailure(t *testing.T) {
	svc := &stubBookingService{err: booking.ErrProviderUnavailable}
	r := bookingRouter(svc)

	body := `{
		"providerId": "prov-1",
		"serviceCategoryId": "cat-1",
		"serviceDate": "2026-09-15",
		"serviceTime": "10:00",
		"address": "12 Main St",
		"city": "Springfield",
		"state": "IL",
		"zipCode": "62704"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
