package routes

import (
	"net/http"
	"time"

	"viewly/handlers"
	"viewly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, rh *handlers.ReviewHandler) {
	api := r.Group("/api", middleware.AuthRequired())
	{
		bookings := api.Group("/bookings")
		bookings.POST("", bh.CreateBooking)
		bookings.GET("", bh.ListBookings)
		bookings.GET("/:id", bh.GetBooking)
		bookings.POST("/:id/accept", bh.AcceptBooking)
		bookings.POST("/:id/decline", bh.DeclineBooking)
		bookings.POST("/:id/cancel", bh.CancelBooking)
		bookings.POST("/:id/confirm", bh.ConfirmCompleted)
		bookings.POST("/:id/reviews", rh.SubmitReview)
		bookings.GET("/:id/reviews", rh.ListBookingReviews)

		api.GET("/conversations/:id/bookings", bh.ListConversationBookings)
		api.GET("/users/:uid/reviews", rh.ListUserReviews)
		api.GET("/offers/:offerID/reviews", rh.ListOfferReviews)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, rh *handlers.ReviewHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh, rh)
}
