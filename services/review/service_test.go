package review

import (
	"context"
	"fmt"
	"testing"

	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *models.Review) error {
	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return fmt.Errorf("failed to create review: %w", mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			})
		}
	}
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, mongo.ErrNoDocuments)
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) ExistsForBooking(_ context.Context, bookingID string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByProvider(_ context.Context, providerID string, limit, offset int) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			out = append(out, *rv)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReviewRepo) CountByProvider(_ context.Context, providerID string) (int64, error) {
	var n int64
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeReviewRepo) RatingStats(_ context.Context, providerID string) (float64, int, error) {
	sum, count := 0, 0
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *fakeReviewRepo) SetResponse(_ context.Context, id, response string) error {
	rv, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review with id %s not found", id)
	}
	rv.Response = response
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
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

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, _, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) ListByProvider(_ context.Context, _, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatusIf(_ context.Context, _ string, _ []string, _ bson.M) (bool, error) {
	return false, nil
}

type fakeProviderRepo struct {
	providers map[string]*models.ProviderProfile
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

func (r *fakeProviderRepo) IncrementCompletedBookings(_ context.Context, _ string, _ int) error {
	return nil
}

func (r *fakeProviderRepo) UpdateRating(_ context.Context, id string, rating float64, totalReviews int) error {
	if p, ok := r.providers[id]; ok {
		p.Rating = rating
		p.TotalReviews = totalReviews
	}
	return nil
}

func (r *fakeProviderRepo) ApplySubscription(_ context.Context, _ string, _ providerRepo.SubscriptionUpdate) error {
	return nil
}

func (r *fakeProviderRepo) SetStripeRefs(_ context.Context, _, _, _ string) error {
	return nil
}

func (r *fakeProviderRepo) GetByStripeCustomer(_ context.Context, customerID string) (*models.ProviderProfile, error) {
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

type fakeDispatcher struct {
	titles []string
}

func (d *fakeDispatcher) Notify(_ context.Context, _, _, title, _ string, _ string, _ string) {
	d.titles = append(d.titles, title)
}

func (d *fakeDispatcher) NotifyExternal(_ context.Context, _, _, _ string, _ notification.BookingDetails) {
}

type fixture struct {
	svc       *DefaultReviewService
	reviews   *fakeReviewRepo
	bookings  *fakeBookingRepo
	providers *fakeProviderRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reviews := &fakeReviewRepo{reviews: map[string]*models.Review{}}
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"bk-1": {
			ID:         "bk-1",
			CustomerID: "cust-1",
			ProviderID: "prov-1",
			Status:     models.BookingStatusCompleted,
		},
	}}
	providers := &fakeProviderRepo{providers: map[string]*models.ProviderProfile{
		"prov-1": {ID: "prov-1", UserID: "prov-user-1"},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{
		"cust-1": {ID: "cust-1", FirstName: "Ann"},
	}}
	svc, err := NewDefaultReviewService(reviews, bookings, providers, users, &fakeDispatcher{}, zap.NewNop())
	require.NoError(t, err)
	return &fixture{svc: svc, reviews: reviews, bookings: bookings, providers: providers}
}

func TestCreateReviewUpdatesProviderRating(t *testing.T) {
	f := newFixture(t)

	rv, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 4, Comment: "great"})
	require.NoError(t, err)

	assert.True(t, rv.IsVerified)
	assert.Equal(t, "prov-1", rv.ProviderID)

	p := f.providers.providers["prov-1"]
	assert.InDelta(t, 4.0, p.Rating, 1e-9)
	assert.Equal(t, 1, p.TotalReviews)
}

func TestCreateReviewMeanOverSeveral(t *testing.T) {
	f := newFixture(t)
	ratings := []int{5, 3, 4}

	for i, rating := range ratings {
		id := fmt.Sprintf("bk-%d", i+1)
		f.bookings.bookings[id] = &models.Booking{
			ID: id, CustomerID: "cust-1", ProviderID: "prov-1",
			Status: models.BookingStatusCompleted,
		}
		_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: id, Rating: rating})
		require.NoError(t, err)
	}

	p := f.providers.providers["prov-1"]
	assert.InDelta(t, 4.0, p.Rating, 1e-9)
	assert.Equal(t, 3, p.TotalReviews)
}

func TestCreateReviewDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 1})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusPending,
		models.BookingStatusAccepted,
		models.BookingStatusInProgress,
		models.BookingStatusCancelled,
	} {
		f := newFixture(t)
		f.bookings.bookings["bk-1"].Status = status

		_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
		assert.ErrorIs(t, err, ErrNotCompleted, "status %s", status)
		assert.Empty(t, f.reviews.reviews)
	}
}

func TestCreateReviewForbiddenForNonCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "someone-else", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := newFixture(t)

	for _, rating := range []int{0, -1, 6} {
		_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestCreateReviewBookingNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "missing", Rating: 5})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestProviderReviewsAttachesCustomer(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	details, total, err := f.svc.ProviderReviews(context.Background(), "prov-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Customer)
	assert.Equal(t, "Ann", details[0].Customer.FirstName)
}

func TestAddResponse(t *testing.T) {
	f := newFixture(t)
	rv, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	updated, err := f.svc.AddResponse(context.Background(), rv.ID, "prov-user-1", "thank you!")
	require.NoError(t, err)
	assert.Equal(t, "thank you!", updated.Response)
}

func TestAddResponseForbiddenForOtherProvider(t *testing.T) {
	f := newFixture(t)
	rv, err := f.svc.Create(context.Background(), "cust-1", CreateReviewRequest{BookingID: "bk-1", Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.AddResponse(context.Background(), rv.ID, "other-user", "hi")
	assert.ErrorIs(t, err, ErrForbidden)
}
