package handlers

import (
	"errors"
	"net/http"

	"viewly/services/booking"
	"viewly/services/review"
	"viewly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the service error taxonomy onto HTTP statuses. The
// mapping lives only here; the services stay transport-agnostic.
func respondError(c *gin.Context, err error) {
	var (
		notAuthorized   *booking.NotAuthorizedError
		invalidState    *booking.InvalidStateError
		alreadyOpen     *booking.BookingAlreadyOpenError
		alreadyReviewed *review.AlreadyReviewedError
		notCompleted    *review.BookingNotCompletedError
		invalidRating   *review.InvalidRatingError
	)

	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &notAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &alreadyOpen):
		c.JSON(http.StatusConflict, gin.H{
			"error":               err.Error(),
			"existing_booking_id": alreadyOpen.ExistingID,
		})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{
			"error":  err.Error(),
			"status": invalidState.Current,
		})
	case errors.As(err, &alreadyReviewed), errors.As(err, &notCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidRating),
		errors.Is(err, review.ErrEmptyComment),
		errors.Is(err, booking.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.GetLogger().Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
