package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viewly/config"
	"viewly/database"
	bookingRepo "viewly/database/repository/booking"
	conversationRepo "viewly/database/repository/conversation"
	reviewRepo "viewly/database/repository/review"
	"viewly/handlers"
	"viewly/middleware"
	"viewly/routes"
	"viewly/services/booking"
	"viewly/services/review"
	"viewly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	reviews := reviewRepo.NewMongoReviewRepo()
	conversations := conversationRepo.NewMongoConversationRepo()

	if err := bookingRepo.EnsureIndexes(bookings); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:          bookings,
		Conversations: conversations,
		Cache:         booking.NewRedisBookingCache(),
	}
	reviewService := &review.DefaultReviewService{
		Bookings: bookings,
		Reviews:  reviews,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	routes.RegisterRoutes(router, bookingHandler, reviewHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
