package review

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "viewly/database/repository/booking"
	"viewly/models"
	"viewly/services/booking"
)

// fakeBookings implements the slice of BookingRepository the review gate
// touches: reads plus the lock transaction.
type fakeBookings struct {
	bookings map[string]*models.Booking
	reviews  map[string]*models.Review
}

func newFakeBookings(bs ...*models.Booking) *fakeBookings {
	f := &fakeBookings{
		bookings: make(map[string]*models.Booking),
		reviews:  make(map[string]*models.Review),
	}
	for _, b := range bs {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (f *fakeBookings) LockReview(_ context.Context, bookingID string, role models.ReviewRole, review *models.Review) error {
	b, ok := f.bookings[bookingID]
	if !ok || b.Status != models.StatusCompleted || b.ReviewLockID(role) != "" {
		return bookingRepo.ErrReviewLocked
	}
	if role == models.RoleSeller {
		b.SellerReviewID = review.ID
	} else {
		b.BuyerReviewID = review.ID
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeBookings) Create(context.Context, *models.Booking) error {
	return errors.New("not implemented")
}

func (f *fakeBookings) GetByConversation(context.Context, string) ([]models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookings) FindOpenByConversation(context.Context, string) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookings) ListByParticipant(context.Context, string) ([]models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookings) ApplyTransition(context.Context, string, bookingRepo.Transition) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookings) ConfirmPartyCompleted(context.Context, string, models.Party) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

// fakeReviews is the read side over the fakeBookings review map.
type fakeReviews struct {
	store *fakeBookings
}

func (f *fakeReviews) GetByID(_ context.Context, id string) (*models.Review, error) {
	r, ok := f.store.reviews[id]
	if !ok {
		return nil, errors.New("review not found")
	}
	return r, nil
}

func (f *fakeReviews) ListByBooking(_ context.Context, bookingID string) ([]models.Review, error) {
	return f.list(func(r *models.Review) bool { return r.BookingID == bookingID }), nil
}

func (f *fakeReviews) ListByTarget(_ context.Context, targetUID string) ([]models.Review, error) {
	return f.list(func(r *models.Review) bool { return r.TargetUID == targetUID }), nil
}

func (f *fakeReviews) ListByOffer(_ context.Context, offerID string) ([]models.Review, error) {
	return f.list(func(r *models.Review) bool { return r.OfferID == offerID }), nil
}

func (f *fakeReviews) list(match func(*models.Review) bool) []models.Review {
	var out []models.Review
	for _, r := range f.store.reviews {
		if match(r) {
			out = append(out, *r)
		}
	}
	return out
}

const (
	hostUID  = "host-1"
	guestUID = "guest-1"
)

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:             "bk-1",
		OfferID:        "offer-1",
		ConversationID: "conv-1",
		HostUID:        hostUID,
		GuestUID:       guestUID,
		ParticipantIDs: []string{hostUID, guestUID},
		ScheduledAt:    time.Now().Add(-24 * time.Hour),
		Status:         models.StatusCompleted,
		GuestStatus:    models.PartyStatusCompleted,
		HostStatus:     models.PartyStatusCompleted,
	}
}

func newTestService(bs ...*models.Booking) (*DefaultReviewService, *fakeBookings) {
	store := newFakeBookings(bs...)
	return &DefaultReviewService{Bookings: store, Reviews: &fakeReviews{store: store}}, store
}

func TestSubmitReviewBothRoles(t *testing.T) {
	svc, store := newTestService(completedBooking())

	// Scenario C: the guest reviews as buyer.
	buyerReview, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "Great",
	})
	if err != nil {
		t.Fatalf("buyer review failed: %v", err)
	}
	if buyerReview.TargetUID != hostUID {
		t.Errorf("buyer review target = %s, want the host", buyerReview.TargetUID)
	}
	if store.bookings["bk-1"].BuyerReviewID != buyerReview.ID {
		t.Error("buyer lock field not set to the review id")
	}

	// A second buyer submission fails.
	_, err = svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    4,
		Comment:   "Again",
	})
	var already *AlreadyReviewedError
	if !errors.As(err, &already) {
		t.Fatalf("err = %v, want AlreadyReviewedError", err)
	}

	// The seller side locks independently.
	sellerReview, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: hostUID,
		Role:      models.RoleSeller,
		Rating:    4,
		Comment:   "Pleasant guest",
	})
	if err != nil {
		t.Fatalf("seller review failed: %v", err)
	}
	if sellerReview.TargetUID != guestUID {
		t.Errorf("seller review target = %s, want the guest", sellerReview.TargetUID)
	}
	if store.bookings["bk-1"].SellerReviewID != sellerReview.ID {
		t.Error("seller lock field not set to the review id")
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	svc, _ := newTestService(completedBooking())

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
			BookingID: "bk-1",
			AuthorUID: guestUID,
			Role:      models.RoleBuyer,
			Rating:    rating,
			Comment:   "fine",
		})
		var bad *InvalidRatingError
		if !errors.As(err, &bad) {
			t.Errorf("rating %d: err = %v, want InvalidRatingError", rating, err)
		}
	}

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    3,
		Comment:   "   ",
	})
	if !errors.Is(err, ErrEmptyComment) {
		t.Errorf("err = %v, want ErrEmptyComment", err)
	}
}

func TestSubmitReviewTrimsComment(t *testing.T) {
	svc, _ := newTestService(completedBooking())
	r, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "  lovely place  ",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r.Comment != "lovely place" {
		t.Errorf("comment = %q, want trimmed", r.Comment)
	}
}

func TestSubmitReviewWrongParty(t *testing.T) {
	svc, _ := newTestService(completedBooking())

	cases := []struct {
		name   string
		author string
		role   models.ReviewRole
	}{
		{"host as buyer", hostUID, models.RoleBuyer},
		{"guest as seller", guestUID, models.RoleSeller},
		{"stranger as buyer", "stranger", models.RoleBuyer},
		{"unknown role", guestUID, models.ReviewRole("owner")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
				BookingID: "bk-1",
				AuthorUID: tc.author,
				Role:      tc.role,
				Rating:    5,
				Comment:   "nice",
			})
			var notAuth *booking.NotAuthorizedError
			if !errors.As(err, &notAuth) {
				t.Errorf("err = %v, want NotAuthorizedError", err)
			}
		})
	}
}

func TestSubmitReviewBookingNotCompleted(t *testing.T) {
	b := completedBooking()
	b.Status = models.StatusCompletedPending
	b.HostStatus = models.PartyStatusScheduled
	svc, _ := newTestService(b)

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "too soon",
	})
	var notCompleted *BookingNotCompletedError
	if !errors.As(err, &notCompleted) {
		t.Fatalf("err = %v, want BookingNotCompletedError", err)
	}
	if notCompleted.Current != models.StatusCompletedPending {
		t.Errorf("error carries status %s", notCompleted.Current)
	}
}

func TestSubmitReviewMissingBooking(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "missing",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "nice",
	})
	if !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestSubmitReviewAlreadyLocked(t *testing.T) {
	// The lock field was set by an earlier (or concurrent) submission the
	// service did not make itself.
	b := completedBooking()
	b.BuyerReviewID = "winner"
	svc, _ := newTestService(b)

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "nice",
	})
	var already *AlreadyReviewedError
	if !errors.As(err, &already) {
		t.Fatalf("err = %v, want AlreadyReviewedError", err)
	}
}

// staleReadBookings hides an already-set lock from reads, so the service's
// pre-check passes and the conflict only surfaces inside LockReview — the
// shape of a genuine concurrent-submission race.
type staleReadBookings struct {
	*fakeBookings
}

func (s *staleReadBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.fakeBookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.BuyerReviewID = ""
	b.SellerReviewID = ""
	return b, nil
}

func TestSubmitReviewLostLockRace(t *testing.T) {
	b := completedBooking()
	b.BuyerReviewID = "winner"
	store := newFakeBookings(b)
	svc := &DefaultReviewService{
		Bookings: &staleReadBookings{fakeBookings: store},
		Reviews:  &fakeReviews{store: store},
	}

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "nice",
	})
	var already *AlreadyReviewedError
	if !errors.As(err, &already) {
		t.Fatalf("err = %v, want AlreadyReviewedError", err)
	}
}

func TestReviewReadSurface(t *testing.T) {
	svc, _ := newTestService(completedBooking())
	if _, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		BookingID: "bk-1",
		AuthorUID: guestUID,
		Role:      models.RoleBuyer,
		Rating:    5,
		Comment:   "Great",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	byBooking, err := svc.ListForBooking(context.Background(), "bk-1")
	if err != nil || len(byBooking) != 1 {
		t.Fatalf("ListForBooking = %v, %v, want one review", byBooking, err)
	}
	byUser, err := svc.ListForUser(context.Background(), hostUID)
	if err != nil || len(byUser) != 1 {
		t.Fatalf("ListForUser = %v, %v, want one review", byUser, err)
	}
	byOffer, err := svc.ListForOffer(context.Background(), "offer-1")
	if err != nil || len(byOffer) != 1 {
		t.Fatalf("ListForOffer = %v, %v, want one review", byOffer, err)
	}
}
