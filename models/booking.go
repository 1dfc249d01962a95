package models

import "time"

// Status is the aggregate lifecycle state of a booking.
type Status string

const (
	StatusRequested        Status = "requested"
	StatusScheduled        Status = "scheduled"
	StatusCompletedPending Status = "completed_pending_confirmation"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusDeclined         Status = "declined"
)

// Terminal reports whether no further transitions are permitted from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeclined
}

// PartyStatus is one party's confirmation track. The aggregate Status is
// derived from the two tracks, never set independently of them.
type PartyStatus string

const (
	PartyStatusRequested PartyStatus = "requested"
	PartyStatusScheduled PartyStatus = "scheduled"
	PartyStatusCancelled PartyStatus = "cancelled"
	PartyStatusCompleted PartyStatus = "completed"
)

// Party identifies which side of the booking an actor is on.
type Party string

const (
	PartyGuest Party = "guest"
	PartyHost  Party = "host"
)

// DeriveStatus computes the aggregate status from the two party tracks.
// A cancelled or declined override wins outright; these are the only
// aggregate states that do not follow from the tracks alone (decline
// leaves the tracks untouched). Otherwise: both tracks completed means
// completed, exactly one completed means completed_pending_confirmation,
// both scheduled means scheduled, anything else is still requested.
func DeriveStatus(guest, host PartyStatus, override Status) Status {
	if override == StatusCancelled || override == StatusDeclined {
		return override
	}
	if guest == PartyStatusCancelled || host == PartyStatusCancelled {
		return StatusCancelled
	}
	switch {
	case guest == PartyStatusCompleted && host == PartyStatusCompleted:
		return StatusCompleted
	case guest == PartyStatusCompleted || host == PartyStatusCompleted:
		return StatusCompletedPending
	case guest == PartyStatusScheduled && host == PartyStatusScheduled:
		return StatusScheduled
	default:
		return StatusRequested
	}
}

// Booking represents one scheduled viewing between a host and a guest.
type Booking struct {
	ID               string      `bson:"id" json:"id"`                               // Unique booking identifier (UUID)
	OfferID          string      `bson:"offer_id" json:"offer_id"`                   // Listing being booked
	ConversationID   string      `bson:"conversation_id" json:"conversation_id"`     // Messaging thread this booking belongs to
	HostUID          string      `bson:"host_uid" json:"host_uid"`                   // Party fulfilling the viewing
	GuestUID         string      `bson:"guest_uid" json:"guest_uid"`                 // Party requesting the viewing
	ParticipantIDs   []string    `bson:"participant_ids" json:"participant_ids"`     // {host_uid, guest_uid}, for access-control queries
	ScheduledAt      time.Time   `bson:"scheduled_at" json:"scheduled_at"`           // Appointment time
	AddressText      string      `bson:"address_text" json:"address_text"`           // Free-form, author-supplied
	RequirementsText string      `bson:"requirements_text" json:"requirements_text"` // Free-form, author-supplied
	Status           Status      `bson:"status" json:"status"`
	GuestStatus      PartyStatus `bson:"guest_status" json:"guest_status"`
	HostStatus       PartyStatus `bson:"host_status" json:"host_status"`
	BuyerReviewID    string      `bson:"buyer_review_id,omitempty" json:"buyer_review_id,omitempty"`   // Set once, while completed
	SellerReviewID   string      `bson:"seller_review_id,omitempty" json:"seller_review_id,omitempty"` // Set once, while completed
	Open             bool        `bson:"open" json:"-"`                                                // True while status is non-terminal; backs the per-conversation uniqueness index
	CreatedAt        time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updated_at"`
}

// IsParty reports whether uid is one of the two named parties.
func (b *Booking) IsParty(uid string) bool {
	return uid == b.HostUID || uid == b.GuestUID
}

// PartyOf returns which side of the booking uid acts for.
func (b *Booking) PartyOf(uid string) (Party, bool) {
	switch uid {
	case b.GuestUID:
		return PartyGuest, true
	case b.HostUID:
		return PartyHost, true
	}
	return "", false
}

// TrackOf returns the confirmation track for the given party.
func (b *Booking) TrackOf(p Party) PartyStatus {
	if p == PartyHost {
		return b.HostStatus
	}
	return b.GuestStatus
}

// ReviewLockID returns the review reference already set for role, if any.
func (b *Booking) ReviewLockID(role ReviewRole) string {
	if role == RoleSeller {
		return b.SellerReviewID
	}
	return b.BuyerReviewID
}
