package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"viewly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ApplyTransition performs one lifecycle step as a single conditional
// FindOneAndUpdate: the filter pins the legal source statuses, the $set
// touches only the fields the transition names. A booking that raced past
// the caller's read no longer matches and the call returns ErrNoMatch.
func (r *mongoBookingRepo) ApplyTransition(ctx context.Context, id string, t Transition) (*models.Booking, error) {
	filter := bson.M{"id": id}
	if len(t.From) > 0 {
		filter["status"] = bson.M{"$in": t.From}
	}

	set := bson.M{
		"status":     t.Status,
		"updated_at": time.Now().UTC(),
	}
	if t.GuestStatus != nil {
		set["guest_status"] = *t.GuestStatus
	}
	if t.HostStatus != nil {
		set["host_status"] = *t.HostStatus
	}
	if t.Close {
		set["open"] = false
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("apply transition to %s: %w", t.Status, err)
	}
	return &updated, nil
}

// ConfirmPartyCompleted marks one party's track completed and derives the
// aggregate status inside the same document write, via an aggregation
// pipeline update. Because the other party's track is never written, two
// near-simultaneous confirmations cannot overwrite each other; the second
// one sees the first track already completed and lands on "completed".
func (r *mongoBookingRepo) ConfirmPartyCompleted(ctx context.Context, id string, party models.Party) (*models.Booking, error) {
	track := "guest_status"
	if party == models.PartyHost {
		track = "host_status"
	}

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": bson.A{models.StatusScheduled, models.StatusCompletedPending}},
	}

	pipeline := bson.A{
		bson.M{"$set": bson.M{
			track:        models.PartyStatusCompleted,
			"updated_at": "$$NOW",
		}},
		bson.M{"$set": bson.M{
			"status": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$guest_status", models.PartyStatusCompleted}},
					bson.M{"$eq": bson.A{"$host_status", models.PartyStatusCompleted}},
				}},
				models.StatusCompleted,
				models.StatusCompletedPending,
			}},
		}},
		bson.M{"$set": bson.M{
			"open": bson.M{"$ne": bson.A{"$status", models.StatusCompleted}},
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("confirm %s completed: %w", party, err)
	}
	return &updated, nil
}
