package review

import (
	"errors"
	"fmt"

	"viewly/models"
)

// ErrEmptyComment means the review comment was blank after trimming.
var ErrEmptyComment = errors.New("review comment is required")

// InvalidRatingError means the rating is outside 1..5.
type InvalidRatingError struct {
	Rating int
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating %d is out of range, must be between 1 and 5", e.Rating)
}

// BookingNotCompletedError means the booking has not reached the completed
// state, so no review may be left yet.
type BookingNotCompletedError struct {
	Current models.Status
}

func (e *BookingNotCompletedError) Error() string {
	return fmt.Sprintf("booking is %q, reviews require a completed booking", e.Current)
}

// AlreadyReviewedError means this side of the booking has already left its
// review.
type AlreadyReviewedError struct {
	Role models.ReviewRole
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("a %s review already exists for this booking", e.Role)
}
