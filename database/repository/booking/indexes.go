package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the lifecycle depends on. The partial
// unique index on conversation_id over open bookings is the compare-and-swap
// behind "at most one open booking per conversation": a second insert for
// the same conversation fails with a duplicate-key error no matter how the
// pre-check raced.
func EnsureIndexes(repo BookingRepository) error {
	r, ok := repo.(*mongoBookingRepo)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "participant_ids", Value: 1}}},
		{
			Keys: bson.D{{Key: "conversation_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "open", Value: true}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	reviewIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "target_uid", Value: 1}}},
		{Keys: bson.D{{Key: "offer_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.reviewColl.Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
