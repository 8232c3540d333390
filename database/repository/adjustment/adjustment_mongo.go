package adjustmentRepo

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

// MongoAdjustmentRepo implements AdjustmentRepository using MongoDB.
type MongoAdjustmentRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoAdjustmentRepo creates a new AdjustmentRepository backed by the
// "payment_adjustments" and "bookings" collections.
func NewMongoAdjustmentRepo() AdjustmentRepository {
	db := database.DB()
	repo := &MongoAdjustmentRepo{
		coll:        db.Collection("payment_adjustments"),
		bookingColl: db.Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("adjustment repo: index bootstrap failed: %v\n", err)
	}
	return repo
}

func (r *MongoAdjustmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAdjustmentRepo) Create(ctx context.Context, adjustment *models.PaymentAdjustment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, adjustment); err != nil {
		return fmt.Errorf("failed to create payment adjustment: %w", err)
	}
	return nil
}

func (r *MongoAdjustmentRepo) GetByID(ctx context.Context, id string) (*models.PaymentAdjustment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var adjustment models.PaymentAdjustment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&adjustment); err != nil {
		return nil, fmt.Errorf("failed to fetch adjustment with id %s: %w", id, err)
	}
	return &adjustment, nil
}

func (r *MongoAdjustmentRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.PaymentAdjustment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var adjustments []models.PaymentAdjustment
	for cursor.Next(ctx) {
		var a models.PaymentAdjustment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return adjustments, nil
}

// RejectIfPending is a compare-and-swap resolution: only a still-pending
// adjustment can be rejected.
func (r *MongoAdjustmentRepo) RejectIfPending(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "status": models.AdjustmentStatusPending}
	update := bson.M{"$set": bson.M{
		"status":      models.AdjustmentStatusRejected,
		"respondedAt": now,
		"updatedAt":   now,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reject adjustment %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// ApproveTransactionally resolves the adjustment and applies the cost bump to
// the booking inside one session transaction. The adjustment write is a
// compare-and-swap on status=pending; the booking write is a pipeline update
// so the commission is recomputed from the post-increment total atomically.
func (r *MongoAdjustmentRepo) ApproveTransactionally(ctx context.Context, id, bookingID string, amount, rate float64) (float64, bool, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return 0, false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var newTotal float64
	matched := false

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		filter := bson.M{"id": id, "status": models.AdjustmentStatusPending}
		update := bson.M{"$set": bson.M{
			"status":      models.AdjustmentStatusApproved,
			"respondedAt": now,
			"updatedAt":   now,
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("approve adjustment write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			// Already resolved by a concurrent response; abort with no writes.
			return nil
		}
		matched = true

		pipeline := mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "estimatedCost", Value: bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$estimatedCost", 0}}},
					amount,
				}}}},
			}}},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "commission", Value: bson.D{{Key: "$multiply", Value: bson.A{"$estimatedCost", rate}}}},
				{Key: "updatedAt", Value: now},
			}}},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Booking
		if err := r.bookingColl.FindOneAndUpdate(sc, bson.M{"id": bookingID}, pipeline, opts).Decode(&updated); err != nil {
			return fmt.Errorf("apply adjustment to booking failed: %w", err)
		}
		newTotal = updated.EstimatedCost
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return 0, false, fmt.Errorf("adjustment approval transaction failed: %w", err)
	}

	return newTotal, matched, nil
}
