// File: caresched/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caresched/config"
	"caresched/cron"
	"caresched/database"
	bookingRepoPkg "caresched/database/repository/booking"
	patientRepoPkg "caresched/database/repository/patient"
	providerRepoPkg "caresched/database/repository/provider"
	"caresched/handlers"
	"caresched/middleware"
	"caresched/routes"
	"caresched/services/availability"
	"caresched/services/booking"
	"caresched/services/patient"
	"caresched/services/provider"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	cacheClient := utils.GetCacheClient()

	// services.
	providerService := &provider.DefaultProviderService{
		Repo:   provRepo,
		Cache:  cacheClient,
		Logger: logger,
	}
	patientService := &patient.DefaultPatientService{
		Repo:   patRepo,
		Logger: logger,
	}
	availabilityEngine := &availability.DefaultAvailabilityEngine{
		Providers: provRepo,
		Bookings:  bookRepo,
		Cache:     cacheClient,
		Logger:    logger,
	}
	bookingService := &booking.DefaultBookingService{
		Providers: provRepo,
		Patients:  patRepo,
		Bookings:  bookRepo,
		Cache:     cacheClient,
		Logger:    logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		ProviderRepo: provRepo,
		PatientRepo:  patRepo,
		Provider:     handlers.NewProviderHandler(providerService),
		Patient:      handlers.NewPatientHandler(patientService),
		Availability: handlers.NewAvailabilityHandler(availabilityEngine, logger),
		Booking:      handlers.NewBookingHandler(bookingService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background booking sweep and health monitoring.
	cron.InitBookingSweeper(bookRepo, logger)
	utils.StartHealthMonitor([]*redis.Client{cacheClient, utils.GetAuthCacheClient()}, database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
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
