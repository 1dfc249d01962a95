package reviewRepo

import (
	"context"

	"viewly/database"
	"viewly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository is the read side for reviews. Writes happen only through
// the booking repository's LockReview transaction, which couples the insert
// to the booking's lock field.
type ReviewRepository interface {
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByBooking(ctx context.Context, bookingID string) ([]models.Review, error)
	ListByTarget(ctx context.Context, targetUID string) ([]models.Review, error)
	ListByOffer(ctx context.Context, offerID string) ([]models.Review, error)
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo returns a ReviewRepository backed by MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	return &mongoReviewRepo{coll: database.DB().Collection("reviews")}
}
