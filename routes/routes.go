package routes

import (
	"net/http"
	"time"

	patientRepo "caresched/database/repository/patient"
	providerRepo "caresched/database/repository/provider"
	"caresched/handlers"
	"caresched/middleware"
	"caresched/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and repos needed for route registration.
type HandlerBundle struct {
	ProviderRepo providerRepo.ProviderRepository
	PatientRepo  patientRepo.PatientRepository

	Provider     *handlers.ProviderHandler
	Patient      *handlers.PatientHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	registerProviderRoutes(r, hb)
	registerPatientRoutes(r, hb)
	registerBookingRoutes(r, hb)
}

// registerProviderRoutes registers provider account, schedule and
// availability endpoints.
func registerProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public endpoints.
		api.POST("/register", hb.Provider.RegisterProviderHandler)
		api.POST("/login", hb.Provider.AuthenticateProviderHandler)
		api.GET("/:id", hb.Provider.GetProviderByIDHandler)
		api.GET("/:id/availability", hb.Availability.GetAvailability)

		// Endpoints that modify provider data require strict authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.PATCH("/:id", hb.Provider.UpdateProviderHandler)
		protected.PUT("/:id/schedule", hb.Provider.UpdateScheduleHandler)
		protected.DELETE("/:id", hb.Provider.DeleteProviderHandler)
		protected.GET("/:id/bookings", hb.Booking.ListProviderBookings)
	}
}

// registerPatientRoutes registers patient account endpoints.
func registerPatientRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/register", hb.Patient.RegisterPatientHandler)
		api.POST("/login", hb.Patient.AuthenticatePatientHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		protected.GET("/:id", hb.Patient.GetPatientByIDHandler)
	}
}

// registerBookingRoutes registers the booking write path and reads.
func registerBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
	{
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/:id", hb.Booking.GetBooking)
		api.POST("/:id/cancel", hb.Booking.CancelBooking)
	}
}
