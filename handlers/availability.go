package handlers

import (
	"net/http"
	"time"

	"caresched/services/availability"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the slot-materialization engine.
type AvailabilityHandler struct {
	Svc    availability.AvailabilityService
	Logger *zap.Logger
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc, Logger: logger}
}

// GetAvailability handles GET /api/providers/:id/availability?from=&to=.
// Range bounds are RFC3339; missing bounds default to the next 7 days.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	providerID := c.Param("id")

	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 0, 7)

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

	slots, err := h.Svc.ComputeAvailability(c.Request.Context(), providerID, from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"from":       from,
		"to":         to,
		"count":      len(slots),
		"slots":      slots,
	})
}
