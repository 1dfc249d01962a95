package bookingRepo

import (
	"context"
	"errors"
	"time"

	"viewly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking. The partial unique index on open bookings
// per conversation turns a lost pre-check race into ErrOpenConflict.
func (r *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrOpenConflict
		}
		return err
	}
	return nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByConversation fetches all bookings linked to a conversation.
func (r *mongoBookingRepo) GetByConversation(ctx context.Context, conversationID string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"conversation_id": conversationID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOpenByConversation returns the conversation's non-terminal booking,
// or nil when there is none.
func (r *mongoBookingRepo) FindOpenByConversation(ctx context.Context, conversationID string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"conversation_id": conversationID, "open": true}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByParticipant fetches all bookings where uid is one of the two parties.
func (r *mongoBookingRepo) ListByParticipant(ctx context.Context, uid string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"participant_ids": uid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
