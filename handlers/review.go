package handlers

import (
	"net/http"

	"viewly/middleware"
	"viewly/models"
	"viewly/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review submission and the review read surface.
type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// SubmitReview handles POST /api/bookings/:id/reviews.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input struct {
		Role    models.ReviewRole `json:"role"`
		Rating  int               `json:"rating"`
		Comment string            `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	r, err := h.Service.SubmitReview(c.Request.Context(), review.SubmitReviewInput{
		BookingID: c.Param("id"),
		AuthorUID: middleware.ActingUID(c),
		Role:      input.Role,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListBookingReviews handles GET /api/bookings/:id/reviews.
func (h *ReviewHandler) ListBookingReviews(c *gin.Context) {
	reviews, err := h.Service.ListForBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListUserReviews handles GET /api/users/:uid/reviews.
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	reviews, err := h.Service.ListForUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListOfferReviews handles GET /api/offers/:offerID/reviews.
func (h *ReviewHandler) ListOfferReviews(c *gin.Context) {
	reviews, err := h.Service.ListForOffer(c.Request.Context(), c.Param("offerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
