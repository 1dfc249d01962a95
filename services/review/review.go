package review

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "viewly/database/repository/booking"
	reviewRepo "viewly/database/repository/review"
	"viewly/models"
	"viewly/services/booking"

	"github.com/google/uuid"
)

// SubmitReviewInput carries one party's review of the other after a
// completed booking.
type SubmitReviewInput struct {
	BookingID string            `json:"booking_id"`
	AuthorUID string            `json:"author_uid"`
	Role      models.ReviewRole `json:"role"`
	Rating    int               `json:"rating"`
	Comment   string            `json:"comment"`
}

// ReviewService gates review creation on the booking lifecycle: one review
// per (booking, role), only after completion, locked atomically against the
// booking document.
type ReviewService interface {
	SubmitReview(ctx context.Context, in SubmitReviewInput) (*models.Review, error)
	ListForBooking(ctx context.Context, bookingID string) ([]models.Review, error)
	ListForUser(ctx context.Context, targetUID string) ([]models.Review, error)
	ListForOffer(ctx context.Context, offerID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Bookings bookingRepo.BookingRepository
	Reviews  reviewRepo.ReviewRepository
}

// SubmitReview validates, authorizes, and records a review. The write path
// locks the booking's review field and inserts the review in one atomic
// step, so of two concurrent submissions for the same (booking, role)
// exactly one succeeds; the other fails with AlreadyReviewedError.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, &InvalidRatingError{Rating: in.Rating}
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}
	if !in.Role.Valid() {
		return nil, &booking.NotAuthorizedError{UID: in.AuthorUID, Action: "review"}
	}

	b, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}

	// role=buyer is the guest reviewing the host; role=seller the reverse.
	var targetUID string
	switch in.Role {
	case models.RoleBuyer:
		if in.AuthorUID != b.GuestUID {
			return nil, &booking.NotAuthorizedError{UID: in.AuthorUID, Action: "review as buyer"}
		}
		targetUID = b.HostUID
	case models.RoleSeller:
		if in.AuthorUID != b.HostUID {
			return nil, &booking.NotAuthorizedError{UID: in.AuthorUID, Action: "review as seller"}
		}
		targetUID = b.GuestUID
	}

	if b.Status != models.StatusCompleted {
		return nil, &BookingNotCompletedError{Current: b.Status}
	}
	if b.ReviewLockID(in.Role) != "" {
		return nil, &AlreadyReviewedError{Role: in.Role}
	}

	r := &models.Review{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		OfferID:   b.OfferID,
		AuthorUID: in.AuthorUID,
		TargetUID: targetUID,
		Role:      in.Role,
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Bookings.LockReview(ctx, b.ID, in.Role, r); err != nil {
		if errors.Is(err, bookingRepo.ErrReviewLocked) {
			// Lost the race between the pre-check and the lock.
			return nil, &AlreadyReviewedError{Role: in.Role}
		}
		return nil, err
	}
	return r, nil
}

// ListForBooking returns the (at most two) reviews on a booking.
func (s *DefaultReviewService) ListForBooking(ctx context.Context, bookingID string) ([]models.Review, error) {
	return s.Reviews.ListByBooking(ctx, bookingID)
}

// ListForUser returns the reviews left about a user.
func (s *DefaultReviewService) ListForUser(ctx context.Context, targetUID string) ([]models.Review, error) {
	return s.Reviews.ListByTarget(ctx, targetUID)
}

// ListForOffer returns the reviews attached to a listing.
func (s *DefaultReviewService) ListForOffer(ctx context.Context, offerID string) ([]models.Review, error) {
	return s.Reviews.ListByOffer(ctx, offerID)
}
