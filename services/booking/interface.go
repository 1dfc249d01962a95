package booking

import (
	"context"
	"time"

	bookingRepo "viewly/database/repository/booking"
	conversationRepo "viewly/database/repository/conversation"
	"viewly/models"
)

// CreateBookingInput carries everything the guest supplies when requesting
// a viewing. Address and requirements are free-form; only the address must
// be non-empty.
type CreateBookingInput struct {
	OfferID          string    `json:"offer_id"`
	ConversationID   string    `json:"conversation_id"`
	HostUID          string    `json:"host_uid"`
	GuestUID         string    `json:"guest_uid"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	AddressText      string    `json:"address_text"`
	RequirementsText string    `json:"requirements_text"`
}

// BookingService owns the booking lifecycle. Every operation takes the
// acting uid explicitly; authorization is "is this actor one of the two
// named parties", nothing more.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	AcceptBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error)
	DeclineBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error)
	ConfirmCompleted(ctx context.Context, bookingID, actingUID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error)
	ListBookingsFor(ctx context.Context, actingUID string) ([]models.Booking, error)
	ListForConversation(ctx context.Context, conversationID, actingUID string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Conversations conversationRepo.ConversationRepository
	Cache         BookingCache
}
