package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "viewly/database/repository/booking"
	"viewly/models"
)

// completionConfirmDelay is how long after the scheduled time a viewing
// becomes eligible for completion confirmation.
const completionConfirmDelay = 3 * time.Hour

// CompletionConfirmableAt returns the earliest instant either party may
// confirm the viewing happened.
func CompletionConfirmableAt(b *models.Booking) time.Time {
	return b.ScheduledAt.Add(completionConfirmDelay)
}

// CanConfirmCompletion reports whether the time gate for completion
// confirmation has passed. The gate is enforced by the caller before
// invoking ConfirmCompleted; the transition itself does not re-check it.
func CanConfirmCompletion(b *models.Booking, now time.Time) bool {
	return !now.Before(CompletionConfirmableAt(b))
}

// AcceptBooking moves a requested booking to scheduled. Host only.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actingUID != b.HostUID {
		return nil, &NotAuthorizedError{UID: actingUID, Action: "accept"}
	}
	if b.Status != models.StatusRequested {
		return nil, &InvalidStateError{Current: b.Status, Action: "accept"}
	}

	scheduled := models.PartyStatusScheduled
	return s.applyTransition(ctx, bookingID, "accept", bookingRepo.Transition{
		From:        []models.Status{models.StatusRequested},
		Status:      models.StatusScheduled,
		GuestStatus: &scheduled,
		HostStatus:  &scheduled,
	})
}

// DeclineBooking terminally declines a requested booking. Host only. The
// party tracks are left untouched; only the aggregate flips.
func (s *DefaultBookingService) DeclineBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actingUID != b.HostUID {
		return nil, &NotAuthorizedError{UID: actingUID, Action: "decline"}
	}
	if b.Status != models.StatusRequested {
		return nil, &InvalidStateError{Current: b.Status, Action: "decline"}
	}

	return s.applyTransition(ctx, bookingID, "decline", bookingRepo.Transition{
		From:   []models.Status{models.StatusRequested},
		Status: models.StatusDeclined,
		Close:  true,
	})
}

// CancelBooking terminally cancels a booking from any non-terminal status.
// Either party may cancel, including from completed_pending_confirmation.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actingUID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(actingUID) {
		return nil, &NotAuthorizedError{UID: actingUID, Action: "cancel"}
	}
	if b.Status.Terminal() {
		return nil, &InvalidStateError{Current: b.Status, Action: "cancel"}
	}

	cancelled := models.PartyStatusCancelled
	return s.applyTransition(ctx, bookingID, "cancel", bookingRepo.Transition{
		From: []models.Status{
			models.StatusRequested,
			models.StatusScheduled,
			models.StatusCompletedPending,
		},
		Status:      models.StatusCancelled,
		GuestStatus: &cancelled,
		HostStatus:  &cancelled,
		Close:       true,
	})
}

// ConfirmCompleted records the acting party's completion confirmation. The
// first confirmation moves the booking to completed_pending_confirmation;
// the second, from the other party, completes it. Confirming again after
// your own track is already completed is a no-op, so a double submit from
// a slow client is harmless.
func (s *DefaultBookingService) ConfirmCompleted(ctx context.Context, bookingID, actingUID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	party, ok := b.PartyOf(actingUID)
	if !ok {
		return nil, &NotAuthorizedError{UID: actingUID, Action: "confirm completion of"}
	}
	if b.Status != models.StatusScheduled && b.Status != models.StatusCompletedPending {
		return nil, &InvalidStateError{Current: b.Status, Action: "confirm completion of"}
	}
	if b.TrackOf(party) == models.PartyStatusCompleted {
		return b, nil
	}

	updated, err := s.Repo.ConfirmPartyCompleted(ctx, bookingID, party)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, s.staleTransitionError(ctx, bookingID, "confirm completion of")
		}
		return nil, err
	}
	s.invalidate(ctx, bookingID)
	return updated, nil
}

func (s *DefaultBookingService) applyTransition(ctx context.Context, bookingID, action string, t bookingRepo.Transition) (*models.Booking, error) {
	updated, err := s.Repo.ApplyTransition(ctx, bookingID, t)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoMatch) {
			return nil, s.staleTransitionError(ctx, bookingID, action)
		}
		return nil, err
	}
	s.invalidate(ctx, bookingID)
	return updated, nil
}

// staleTransitionError rereads the booking after a conditional update
// matched nothing, to report the accurate failure: gone, or raced into a
// status the transition does not allow.
func (s *DefaultBookingService) staleTransitionError(ctx context.Context, bookingID, action string) error {
	current, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	return &InvalidStateError{Current: current.Status, Action: action}
}

func (s *DefaultBookingService) invalidate(ctx context.Context, bookingID string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, bookingID)
	}
}
