package bookingRepo

import (
	"context"
	"fmt"

	"viewly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LockReview sets the booking's review lock field for the role and inserts
// the review in one multi-document transaction. The conditional update is
// the load-bearing part: it matches only while the booking is completed and
// the lock field is still unset, so of two concurrent submissions for the
// same (booking, role) exactly one commits and the other gets
// ErrReviewLocked.
func (r *mongoBookingRepo) LockReview(ctx context.Context, bookingID string, role models.ReviewRole, review *models.Review) error {
	lockField := "buyer_review_id"
	if role == models.RoleSeller {
		lockField = "seller_review_id"
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":      bookingID,
			"status":  models.StatusCompleted,
			lockField: nil, // matches both absent and null
		}
		update := bson.M{"$set": bson.M{
			lockField:    review.ID,
			"updated_at": review.CreatedAt,
		}}

		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("acquire review lock: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrReviewLocked
		}

		if _, err := r.reviewColl.InsertOne(sc, review); err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
