package conversationRepo

import (
	"context"
	"errors"
	"time"

	"viewly/database"
	"viewly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("conversation not found")

// ConversationRepository covers the slice of the conversation document the
// booking core touches: the latest-booking convenience pointer.
type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	SetLatestBooking(ctx context.Context, conversationID, bookingID string) error
}

type mongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo returns a ConversationRepository backed by MongoDB.
func NewMongoConversationRepo() ConversationRepository {
	return &mongoConversationRepo{coll: database.DB().Collection("conversations")}
}

// GetByID returns a conversation by its ID.
func (r *mongoConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// SetLatestBooking points the conversation at its newest booking. Field-level
// $set only; the core never writes the conversation's other fields.
func (r *mongoConversationRepo) SetLatestBooking(ctx context.Context, conversationID, bookingID string) error {
	update := bson.M{"$set": bson.M{
		"latest_booking_id": bookingID,
		"updated_at":        time.Now().UTC(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": conversationID}, update)
	return err
}
