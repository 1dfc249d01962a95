package bookingRepo

import (
	"context"
	"errors"

	"viewly/database"
	"viewly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means no booking document exists for the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrOpenConflict means the conversation already has an open booking
	// (the partial unique index rejected the insert).
	ErrOpenConflict = errors.New("conversation already has an open booking")
	// ErrNoMatch means a conditional update matched no document: the booking
	// is gone or its status no longer satisfies the transition's filter.
	ErrNoMatch = errors.New("no booking matched the transition filter")
	// ErrReviewLocked means the review lock field for the role was already
	// set, or the booking was not in the completed state.
	ErrReviewLocked = errors.New("review lock not acquired")
)

// Transition is one field-level lifecycle step. Only non-nil track pointers
// are written, so a transition that leaves a party track alone can never
// overwrite a concurrent change to it.
type Transition struct {
	From        []models.Status // legal current statuses, enforced in the update filter
	Status      models.Status
	GuestStatus *models.PartyStatus
	HostStatus  *models.PartyStatus
	Close       bool // clear the open marker (terminal transitions)
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByConversation(ctx context.Context, conversationID string) ([]models.Booking, error)
	FindOpenByConversation(ctx context.Context, conversationID string) (*models.Booking, error)
	ListByParticipant(ctx context.Context, uid string) ([]models.Booking, error)
	ApplyTransition(ctx context.Context, id string, t Transition) (*models.Booking, error)
	ConfirmPartyCompleted(ctx context.Context, id string, party models.Party) (*models.Booking, error)
	LockReview(ctx context.Context, bookingID string, role models.ReviewRole, review *models.Review) error
}

type mongoBookingRepo struct {
	coll       *mongo.Collection
	reviewColl *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		coll:       db.Collection("bookings"),
		reviewColl: db.Collection("reviews"),
	}
}
