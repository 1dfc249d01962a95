package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "viewly/database/repository/booking"
	"viewly/models"
	"viewly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking inserts a new booking in the requested state and syncs the
// conversation's latest-booking pointer. The "one open booking per
// conversation" rule is checked twice: a friendly pre-query for the common
// case, then the partial unique index as the authoritative test-and-set, so
// two near-simultaneous requests cannot both slip through.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	address := strings.TrimSpace(in.AddressText)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	if existing, err := s.Repo.FindOpenByConversation(ctx, in.ConversationID); err != nil {
		return nil, fmt.Errorf("check open booking: %w", err)
	} else if existing != nil {
		return nil, &BookingAlreadyOpenError{ConversationID: in.ConversationID, ExistingID: existing.ID}
	}

	b := &models.Booking{
		ID:               uuid.New().String(),
		OfferID:          in.OfferID,
		ConversationID:   in.ConversationID,
		HostUID:          in.HostUID,
		GuestUID:         in.GuestUID,
		ParticipantIDs:   []string{in.HostUID, in.GuestUID},
		ScheduledAt:      in.ScheduledAt,
		AddressText:      address,
		RequirementsText: strings.TrimSpace(in.RequirementsText),
		Status:           models.StatusRequested,
		GuestStatus:      models.PartyStatusRequested,
		HostStatus:       models.PartyStatusRequested,
		Open:             true,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrOpenConflict) {
			conflict := &BookingAlreadyOpenError{ConversationID: in.ConversationID}
			if existing, qerr := s.Repo.FindOpenByConversation(ctx, in.ConversationID); qerr == nil && existing != nil {
				conflict.ExistingID = existing.ID
			}
			return nil, conflict
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.syncConversation(ctx, b.ConversationID, b.ID)
	return b, nil
}

// GetBooking returns a booking to one of its parties.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error) {
	if s.Cache != nil {
		if b, ok := s.Cache.Get(ctx, bookingID); ok {
			if !b.IsParty(actingUID) {
				return nil, &NotAuthorizedError{UID: actingUID, Action: "view"}
			}
			return b, nil
		}
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actingUID) {
		return nil, &NotAuthorizedError{UID: actingUID, Action: "view"}
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, b)
	}
	return b, nil
}

// ListBookingsFor returns every booking the actor is a party to.
func (s *DefaultBookingService) ListBookingsFor(ctx context.Context, actingUID string) ([]models.Booking, error) {
	return s.Repo.ListByParticipant(ctx, actingUID)
}

// ListForConversation returns a conversation's bookings, restricted to its
// parties.
func (s *DefaultBookingService) ListForConversation(ctx context.Context, conversationID, actingUID string) ([]models.Booking, error) {
	bookings, err := s.Repo.GetByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsParty(actingUID) {
			visible = append(visible, b)
		}
	}
	return visible, nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// syncConversation updates the conversation's latest-booking pointer. The
// pointer is non-authoritative, so failure here is logged and never
// propagated; it is the one swallowed error in the lifecycle core.
func (s *DefaultBookingService) syncConversation(ctx context.Context, conversationID, bookingID string) {
	if s.Conversations == nil {
		return
	}
	if err := s.Conversations.SetLatestBooking(ctx, conversationID, bookingID); err != nil {
		utils.GetLogger().Warn("failed to sync conversation latest booking",
			zap.String("conversation_id", conversationID),
			zap.String("booking_id", bookingID),
			zap.Error(err))
	}
}
