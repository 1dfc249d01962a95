package models

import "time"

// ReviewRole is the author's role in the reviewed booking.
type ReviewRole string

const (
	RoleBuyer  ReviewRole = "buyer"  // the guest reviewing the host
	RoleSeller ReviewRole = "seller" // the host reviewing the guest
)

// Valid reports whether r is one of the two known roles.
func (r ReviewRole) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// Review is an immutable record left by one party after a completed booking.
// It is created exactly once per (booking, role) pair and never mutated.
type Review struct {
	ID        string     `bson:"id" json:"id"`
	BookingID string     `bson:"booking_id" json:"booking_id"`
	OfferID   string     `bson:"offer_id" json:"offer_id"`
	AuthorUID string     `bson:"author_uid" json:"author_uid"`
	TargetUID string     `bson:"target_uid" json:"target_uid"`
	Role      ReviewRole `bson:"role" json:"role"`
	Rating    int        `bson:"rating" json:"rating"` // 1-5
	Comment   string     `bson:"comment" json:"comment"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
}
