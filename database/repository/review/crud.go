package reviewRepo

import (
	"context"
	"errors"

	"viewly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("review not found")

// GetByID returns a review by its ID.
func (r *mongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *mongoReviewRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Review, error) {
	return r.list(ctx, bson.M{"booking_id": bookingID})
}

func (r *mongoReviewRepo) ListByTarget(ctx context.Context, targetUID string) ([]models.Review, error) {
	return r.list(ctx, bson.M{"target_uid": targetUID})
}

func (r *mongoReviewRepo) ListByOffer(ctx context.Context, offerID string) ([]models.Review, error) {
	return r.list(ctx, bson.M{"offer_id": offerID})
}

func (r *mongoReviewRepo) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
