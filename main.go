// File: parkwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkwise/config"
	"parkwise/database"
	spotRepoPkg "parkwise/database/repository/spot"
	userRepoPkg "parkwise/database/repository/user"
	"parkwise/handlers"
	"parkwise/middleware"
	"parkwise/routes"
	"parkwise/services/reservation"
	"parkwise/services/user"
	"parkwise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	client, err := database.Connect()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
		}
	}()
	db := client.Database(config.AppConfig.DatabaseName)

	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	spotRepo := spotRepoPkg.NewMongoSpotRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	reservationService := &reservation.DefaultReservationService{
		Spots: spotRepo,
		Users: userRepo,
	}

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Auth:     handlers.NewAuthHandler(userService, logger),
		Booking:  handlers.NewBookingHandler(reservationService, logger),
		Spot:     handlers.NewSpotHandler(reservationService, logger),
		User:     handlers.NewUserHandler(userService, logger),
		Admin:    handlers.NewAdminHandler(userService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
