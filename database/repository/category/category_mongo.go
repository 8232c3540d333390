package categoryRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRepository defines read access for service categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.ServiceCategory, error)
	GetAll(ctx context.Context) ([]models.ServiceCategory, error)
}

// MongoCategoryRepo implements CategoryRepository using MongoDB.
type MongoCategoryRepo struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepo creates a new CategoryRepository backed by the
// "service_categories" collection.
func NewMongoCategoryRepo() CategoryRepository {
	return &MongoCategoryRepo{coll: database.DB().Collection("service_categories")}
}

func (r *MongoCategoryRepo) GetByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var category models.ServiceCategory
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&category); err != nil {
		return nil, fmt.Errorf("failed to fetch service category with id %s: %w", id, err)
	}
	return &category, nil
}

func (r *MongoCategoryRepo) GetAll(ctx context.Context) ([]models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list service categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.ServiceCategory
	for cursor.Next(ctx) {
		var c models.ServiceCategory
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode service category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, cursor.Err()
}
