package handlers

import (
	"net/http"
	"time"

	"viewly/middleware"
	"viewly/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP. The acting uid
// always comes from the authenticated request, never from the payload.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings. The authenticated actor is the
// guest; the host comes from the conversation context supplied by the client.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		OfferID          string    `json:"offer_id"`
		ConversationID   string    `json:"conversation_id"`
		HostUID          string    `json:"host_uid"`
		ScheduledAt      time.Time `json:"scheduled_at"`
		AddressText      string    `json:"address_text"`
		RequirementsText string    `json:"requirements_text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		OfferID:          input.OfferID,
		ConversationID:   input.ConversationID,
		HostUID:          input.HostUID,
		GuestUID:         middleware.ActingUID(c),
		ScheduledAt:      input.ScheduledAt,
		AddressText:      input.AddressText,
		RequirementsText: input.RequirementsText,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":        b,
		"confirmable_at": booking.CompletionConfirmableAt(b),
	})
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookingsFor(c.Request.Context(), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListConversationBookings handles GET /api/conversations/:id/bookings.
func (h *BookingHandler) ListConversationBookings(c *gin.Context) {
	bookings, err := h.Service.ListForConversation(c.Request.Context(), c.Param("id"), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AcceptBooking handles POST /api/bookings/:id/accept.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	b, err := h.Service.AcceptBooking(c.Request.Context(), c.Param("id"), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeclineBooking handles POST /api/bookings/:id/decline.
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	b, err := h.Service.DeclineBooking(c.Request.Context(), c.Param("id"), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), middleware.ActingUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmCompleted handles POST /api/bookings/:id/confirm. The 3-hour
// eligibility gate is enforced here, at the caller boundary; the lifecycle
// transition itself does not re-check it.
func (h *BookingHandler) ConfirmCompleted(c *gin.Context) {
	uid := middleware.ActingUID(c)
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if !booking.CanConfirmCompletion(b, time.Now()) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "booking is not yet eligible for completion confirmation",
			"confirmable_at": booking.CompletionConfirmableAt(b),
		})
		return
	}

	updated, err := h.Service.ConfirmCompleted(c.Request.Context(), b.ID, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
