package providerRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new ProviderRepository backed by the
// "provider_profiles" collection.
func NewMongoProviderRepo() ProviderRepository {
	return &MongoProviderRepo{coll: database.DB().Collection("provider_profiles")}
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider for user %s: %w", userID, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) IncrementCompletedBookings(ctx context.Context, id string, by int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"completedBookings": by},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment completed bookings for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoProviderRepo) UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":       rating,
		"totalReviews": totalReviews,
		"updatedAt":    time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoProviderRepo) ApplySubscription(ctx context.Context, id string, sub SubscriptionUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"subscriptionStatus": sub.Status,
		"updatedAt":          time.Now(),
	}
	if sub.PlanID != "" {
		set["subscriptionPlanId"] = sub.PlanID
	}
	if sub.StartDate != nil {
		set["subscriptionStartDate"] = sub.StartDate
	}
	if sub.EndDate != nil {
		set["subscriptionEndDate"] = sub.EndDate
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to apply subscription to provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoProviderRepo) SetStripeRefs(ctx context.Context, id, customerID, subscriptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if customerID != "" {
		set["stripeCustomerId"] = customerID
	}
	if subscriptionID != "" {
		set["stripeSubscriptionId"] = subscriptionID
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set stripe refs for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", id)
	}
	return nil
}

func (r *MongoProviderRepo) GetByStripeCustomer(ctx context.Context, customerID string) (*models.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"stripeCustomerId": customerID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider for stripe customer %s: %w", customerID, err)
	}
	return &provider, nil
}
