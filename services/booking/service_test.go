package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, customerID, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(_ context.Context, providerID, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusIf(_ context.Context, id string, fromStatuses []string, set bson.M) (bool, error) {
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	allowed := false
	for _, s := range fromStatuses {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, nil
	}
	if v, ok := set["status"].(string); ok {
		b.Status = v
	}
	if v, ok := set["finalCost"].(float64); ok {
		b.FinalCost = v
	}
	if v, ok := set["commission"].(float64); ok {
		b.Commission = v
	}
	if v, ok := set["cancellationReason"].(string); ok {
		b.CancellationReason = v
	}
	b.UpdatedAt = time.Now()
	return true, nil
}

type fakeProviderRepo struct {
	providers map[string]*models.ProviderProfile
	completed map[string]int
}

func newFakeProviderRepo(providers ...*models.ProviderProfile) *fakeProviderRepo {
	r := &fakeProviderRepo{
		providers: make(map[string]*models.ProviderProfile),
		completed: make(map[string]int),
	}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	return r
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.ProviderProfile, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProviderRepo) GetByUserID(_ context.Context, userID string) (*models.ProviderProfile, error) {
	for _, p := range r.providers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("failed to fetch provider for user %s: %w", userID, mongo.ErrNoDocuments)
}

func (r *fakeProviderRepo) IncrementCompletedBookings(_ context.Context, id string, by int) error {
	r.completed[id] += by
	return nil
}

func (r *fakeProviderRepo) UpdateRating(_ context.Context, id string, rating float64, totalReviews int) error {
	if p, ok := r.providers[id]; ok {
		p.Rating = rating
		p.TotalReviews = totalReviews
	}
	return nil
}

func (r *fakeProviderRepo) ApplySubscription(_ context.Context, id string, sub providerRepo.SubscriptionUpdate) error {
	if p, ok := r.providers[id]; ok {
		p.SubscriptionStatus = sub.Status
		p.SubscriptionPlanID = sub.PlanID
		p.SubscriptionStartDate = sub.StartDate
		p.SubscriptionEndDate = sub.EndDate
	}
	return nil
}

func (r *fakeProviderRepo) SetStripeRefs(_ context.Context, id, customerID, subscriptionID string) error {
	if p, ok := r.providers[id]; ok {
		p.StripeCustomerID = customerID
		p.StripeSubscriptionID = subscriptionID
	}
	return nil
}

func (r *fakeProviderRepo) GetByStripeCustomer(_ context.Context, customerID string) (*models.ProviderProfile, error) {
	for _, p := range r.providers {
		if p.StripeCustomerID == customerID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("failed to fetch provider for stripe customer %s: %w", customerID, mongo.ErrNoDocuments)
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *u
	return &cp, nil
}

type fakePlanRepo struct {
	plans map[string]*models.SubscriptionPlan
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*models.SubscriptionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch subscription plan with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]models.SubscriptionPlan, error) {
	var out []models.SubscriptionPlan
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]*models.ServiceCategory
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.ServiceCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch service category with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetAll(_ context.Context) ([]models.ServiceCategory, error) {
	var out []models.ServiceCategory
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

type notifyCall struct {
	UserID string
	Type   string
	Title  string
}

type fakeDispatcher struct {
	inApp    []notifyCall
	external []notifyCall
}

func (d *fakeDispatcher) Notify(_ context.Context, userID, ntype, title, _ string, _ string, _ string) {
	d.inApp = append(d.inApp, notifyCall{UserID: userID, Type: ntype, Title: title})
}

func (d *fakeDispatcher) NotifyExternal(_ context.Context, userID, subject, _ string, _ notification.BookingDetails) {
	d.external = append(d.external, notifyCall{UserID: userID, Title: subject})
}

func (d *fakeDispatcher) lastInApp() notifyCall {
	if len(d.inApp) == 0 {
		return notifyCall{}
	}
	return d.inApp[len(d.inApp)-1]
}

type fixture struct {
	svc       *DefaultBookingService
	bookings  *fakeBookingRepo
	providers *fakeProviderRepo
	notifier  *fakeDispatcher
}

func newFixture(t *testing.T, providers ...*models.ProviderProfile) *fixture {
	t.Helper()
	bookings := newFakeBookingRepo()
	provRepo := newFakeProviderRepo(providers...)
	notifier := &fakeDispatcher{}
	svc, err := NewDefaultBookingService(
		bookings,
		provRepo,
		&fakeUserRepo{users: map[string]*models.User{}},
		&fakePlanRepo{plans: map[string]*models.SubscriptionPlan{}},
		&fakeCategoryRepo{categories: map[string]*models.ServiceCategory{}},
		notifier,
		zap.NewNop(),
		0.10,
	)
	require.NoError(t, err)
	return &fixture{svc: svc, bookings: bookings, providers: provRepo, notifier: notifier}
}

func activeProvider() *models.ProviderProfile {
	return &models.ProviderProfile{
		ID:                 "prov-1",
		UserID:             "prov-user-1",
		BusinessName:       "Sparkle Cleaning",
		SubscriptionStatus: models.SubscriptionStatusActive,
	}
}

func createRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID:        "prov-1",
		ServiceCategoryID: "cat-1",
		ServiceDate:       "2026-09-15",
		ServiceTime:       "10:00",
		Address:           "12 Main St",
		City:              "Springfield",
		State:             "IL",
		ZipCode:           "62704",
		EstimatedCost:     100,
	}
}

func TestCreateBookingComputesCommission(t *testing.T) {
	f := newFixture(t, activeProvider())

	bk, err := f.svc.Create(context.Background(), "cust-1", createRequest())
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, bk.Status)
	assert.Equal(t, models.PaymentStatusPending, bk.PaymentStatus)
	assert.InDelta(t, 10.0, bk.Commission, 1e-9)

	last := f.notifier.lastInApp()
	assert.Equal(t, "prov-user-1", last.UserID)
	assert.Equal(t, "New Booking Request", last.Title)
	require.Len(t, f.notifier.external, 1)
	assert.Equal(t, "prov-user-1", f.notifier.external[0].UserID)
}

func TestCreateBookingZeroEstimateZeroCommission(t *testing.T) {
	f := newFixture(t, activeProvider())

	req := createRequest()
	req.EstimatedCost = 0
	bk, err := f.svc.Create(context.Background(), "cust-1", req)
	require.NoError(t, err)
	assert.Zero(t, bk.Commission)
}

func TestCreateBookingUsesPlanCommissionRate(t *testing.T) {
	p := activeProvider()
	p.SubscriptionPlanID = "plan-pro"
	f := newFixture(t, p)
	f.svc.Plans = &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{
		"plan-pro": {ID: "plan-pro", CommissionRate: 0.05},
	}}

	bk, err := f.svc.Create(context.Background(), "cust-1", createRequest())
	require.NoError(t, err)
	assert.InDelta(t, 5.0, bk.Commission, 1e-9)
}

func TestCreateBookingSubscriptionGate(t *testing.T) {
	for _, status := range []string{models.SubscriptionStatusInactive, models.SubscriptionStatusCancelled} {
		p := activeProvider()
		p.SubscriptionStatus = status
		f := newFixture(t, p)

		_, err := f.svc.Create(context.Background(), "cust-1", createRequest())
		assert.ErrorIs(t, err, ErrProviderUnavailable, "status %s", status)
		assert.Empty(t, f.notifier.inApp)
	}
}

func TestCreateBookingProviderNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "cust-1", createRequest())
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedBooking(f *fixture, status string) *models.Booking {
	bk := &models.Booking{
		ID:            "bk-1",
		CustomerID:    "cust-1",
		ProviderID:    "prov-1",
		ServiceDate:   "2026-09-15",
		ServiceTime:   "10:00",
		EstimatedCost: 100,
		Commission:    10,
		Status:        status,
		PaymentStatus: models.PaymentStatusPending,
	}
	f.bookings.bookings[bk.ID] = bk
	return bk
}

func TestUpdateStatusTransitionLegality(t *testing.T) {
	cases := []struct {
		from   string
		to     string
		wantOK bool
	}{
		{models.BookingStatusPending, models.BookingStatusAccepted, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusInProgress, false},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusAccepted, models.BookingStatusInProgress, true},
		{models.BookingStatusAccepted, models.BookingStatusCompleted, true},
		{models.BookingStatusAccepted, models.BookingStatusCancelled, true},
		{models.BookingStatusInProgress, models.BookingStatusCompleted, true},
		{models.BookingStatusInProgress, models.BookingStatusCancelled, true},
		{models.BookingStatusInProgress, models.BookingStatusAccepted, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{models.BookingStatusCompleted, models.BookingStatusInProgress, false},
		{models.BookingStatusCancelled, models.BookingStatusAccepted, false},
		{models.BookingStatusCancelled, models.BookingStatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			f := newFixture(t, activeProvider())
			seedBooking(f, tc.from)

			_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
				UpdateStatusRequest{Status: tc.to})
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatusNormalizesConfirmedAlias(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)

	bk, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
		UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, bk.Status)
}

func TestUpdateStatusCompletionSideEffects(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusAccepted)

	finalCost := 200.0
	bk, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
		UpdateStatusRequest{Status: models.BookingStatusCompleted, FinalCost: &finalCost})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, bk.Status)
	assert.InDelta(t, 200.0, bk.FinalCost, 1e-9)
	assert.InDelta(t, 20.0, bk.Commission, 1e-9)
	assert.Equal(t, 1, f.providers.completed["prov-1"])

	last := f.notifier.lastInApp()
	assert.Equal(t, "cust-1", last.UserID)
	assert.Equal(t, "Booking Completed", last.Title)
}

func TestUpdateStatusCompletionWithoutFinalCostKeepsCommission(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusInProgress)

	bk, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
		UpdateStatusRequest{Status: models.BookingStatusCompleted})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, bk.Commission, 1e-9)
	assert.Zero(t, bk.FinalCost)
}

func TestUpdateStatusAcceptedNotifiesCustomer(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
		UpdateStatusRequest{Status: models.BookingStatusAccepted})
	require.NoError(t, err)

	last := f.notifier.lastInApp()
	assert.Equal(t, "cust-1", last.UserID)
	assert.Equal(t, "Booking Accepted", last.Title)
}

func TestUpdateStatusCancellationNotifiesOtherParty(t *testing.T) {
	t.Run("customer cancels, provider notified", func(t *testing.T) {
		f := newFixture(t, activeProvider())
		seedBooking(f, models.BookingStatusAccepted)

		_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "cust-1", models.RoleCustomer,
			UpdateStatusRequest{Status: models.BookingStatusCancelled, CancellationReason: "schedule conflict"})
		require.NoError(t, err)

		last := f.notifier.lastInApp()
		assert.Equal(t, "prov-user-1", last.UserID)
		assert.Equal(t, "Booking Cancelled", last.Title)
	})

	t.Run("provider cancels, customer notified", func(t *testing.T) {
		f := newFixture(t, activeProvider())
		seedBooking(f, models.BookingStatusAccepted)

		_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "prov-user-1", models.RoleProvider,
			UpdateStatusRequest{Status: models.BookingStatusCancelled})
		require.NoError(t, err)

		last := f.notifier.lastInApp()
		assert.Equal(t, "cust-1", last.UserID)
	})
}

func TestUpdateStatusCancellationStoresReason(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)

	bk, err := f.svc.UpdateStatus(context.Background(), "bk-1", "cust-1", models.RoleCustomer,
		UpdateStatusRequest{Status: models.BookingStatusCancelled, CancellationReason: "found another provider"})
	require.NoError(t, err)
	assert.Equal(t, "found another provider", bk.CancellationReason)
}

func TestUpdateStatusForbiddenForStranger(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)

	_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "someone-else", models.RoleCustomer,
		UpdateStatusRequest{Status: models.BookingStatusCancelled})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture(t, activeProvider())

	_, err := f.svc.UpdateStatus(context.Background(), "missing", "cust-1", models.RoleCustomer,
		UpdateStatusRequest{Status: models.BookingStatusCancelled})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScopedByRole(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)
	f.bookings.bookings["bk-2"] = &models.Booking{
		ID: "bk-2", CustomerID: "cust-2", ProviderID: "prov-1",
		Status: models.BookingStatusAccepted,
	}

	asCustomer, err := f.svc.List(context.Background(), "cust-1", models.RoleCustomer, "")
	require.NoError(t, err)
	require.Len(t, asCustomer, 1)
	assert.Equal(t, "bk-1", asCustomer[0].ID)

	asProvider, err := f.svc.List(context.Background(), "prov-user-1", models.RoleProvider, "")
	require.NoError(t, err)
	assert.Len(t, asProvider, 2)

	filtered, err := f.svc.List(context.Background(), "prov-user-1", models.RoleProvider, models.BookingStatusAccepted)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "bk-2", filtered[0].ID)
}

func TestGetByIDForbiddenForStranger(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)

	_, err := f.svc.GetByID(context.Background(), "bk-1", "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetByIDEnrichesParties(t *testing.T) {
	f := newFixture(t, activeProvider())
	seedBooking(f, models.BookingStatusPending)
	f.svc.Users = &fakeUserRepo{users: map[string]*models.User{
		"cust-1":      {ID: "cust-1", FirstName: "Ann", LastName: "Lee"},
		"prov-user-1": {ID: "prov-user-1", FirstName: "Bob", LastName: "Ray"},
	}}
	f.svc.Categories = &fakeCategoryRepo{categories: map[string]*models.ServiceCategory{}}

	detail, err := f.svc.GetByID(context.Background(), "bk-1", "cust-1")
	require.NoError(t, err)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Ann", detail.Customer.FirstName)
	require.NotNil(t, detail.Provider)
	assert.Equal(t, "Sparkle Cleaning", detail.Provider.BusinessName)
	require.NotNil(t, detail.Provider.User)
	assert.Equal(t, "Bob", detail.Provider.User.FirstName)
}
