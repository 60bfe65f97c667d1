package handlers

import (
	"net/http"
	"time"

	"caresched/services/booking"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking write path and booking reads.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request body: %v", err))
		return
	}

	// A patient token may only book for itself.
	if patientID, ok := c.Get("patientID"); ok && patientID.(string) != req.PatientID {
		utils.RespondError(c, utils.NewValidationError("patientId does not match the authenticated patient"))
		return
	}

	created, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	// The body is optional; a bare cancel carries no reason.
	_ = c.ShouldBindJSON(&body)

	cancelled, err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id"), body.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListProviderBookings handles GET /api/providers/:id/bookings?from=&to=.
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now.AddDate(0, 0, 30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("from must be RFC3339"))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("to must be RFC3339"))
			return
		}
		to = parsed
	}

	bookings, err := h.Svc.ListProviderBookings(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}
