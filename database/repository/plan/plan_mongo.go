package planRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlanRepository defines read access for subscription plans.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	ListActive(ctx context.Context) ([]models.SubscriptionPlan, error)
}

// MongoPlanRepo implements PlanRepository using MongoDB.
type MongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo creates a new PlanRepository backed by the
// "subscription_plans" collection.
func NewMongoPlanRepo() PlanRepository {
	return &MongoPlanRepo{coll: database.DB().Collection("subscription_plans")}
}

func (r *MongoPlanRepo) GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plan models.SubscriptionPlan
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to fetch subscription plan with id %s: %w", id, err)
	}
	return &plan, nil
}

func (r *MongoPlanRepo) ListActive(ctx context.Context) ([]models.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []models.SubscriptionPlan
	for cursor.Next(ctx) {
		var p models.SubscriptionPlan
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode subscription plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, cursor.Err()
}
