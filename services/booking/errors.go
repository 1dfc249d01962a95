package booking

import (
	"errors"
	"fmt"

	"viewly/models"
)

var (
	// ErrBookingNotFound means no booking exists for the given id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrEmptyAddress means the viewing address was blank after trimming.
	ErrEmptyAddress = errors.New("address is required")
)

// NotAuthorizedError means the actor is not a party to the booking, or is
// the wrong party for the attempted action.
type NotAuthorizedError struct {
	UID    string
	Action string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("actor %s is not authorized to %s this booking", e.UID, e.Action)
}

// InvalidStateError means the transition is illegal from the booking's
// current status, including any attempt to leave a terminal status.
type InvalidStateError struct {
	Current models.Status
	Action  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Action, e.Current)
}

// BookingAlreadyOpenError means the conversation already has a non-terminal
// booking. ExistingID carries the conflicting booking so the caller can
// point the user at it.
type BookingAlreadyOpenError struct {
	ConversationID string
	ExistingID     string
}

func (e *BookingAlreadyOpenError) Error() string {
	return fmt.Sprintf("conversation %s already has an open booking %s", e.ConversationID, e.ExistingID)
}
