package models

import "time"

// Conversation is the two-party messaging thread a booking hangs off.
// The lifecycle core only maintains the latest_booking_id convenience
// pointer; messages and unread counts are owned elsewhere.
type Conversation struct {
	ID              string    `bson:"id" json:"id"`
	HostUID         string    `bson:"host_uid" json:"host_uid"`
	GuestUID        string    `bson:"guest_uid" json:"guest_uid"`
	ParticipantIDs  []string  `bson:"participant_ids" json:"participant_ids"`
	LatestBookingID string    `bson:"latest_booking_id,omitempty" json:"latest_booking_id,omitempty"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
