package handlers

import (
	"net/http"

	"caresched/models"
	"caresched/services/provider"
	"caresched/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider account and schedule management.
type ProviderHandler struct {
	Svc provider.ProviderService
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Svc: svc}
}

// RegisterProviderHandler handles POST /api/providers/register.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var p models.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request body: %v", err))
		return
	}
	created, err := h.Svc.Register(&p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AuthenticateProviderHandler handles POST /api/providers/login.
func (h *ProviderHandler) AuthenticateProviderHandler(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.RespondError(c, utils.NewValidationError("email and password are required"))
		return
	}
	p, err := h.Svc.Authenticate(creds.Email, creds.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProviderByIDHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProviderHandler handles PATCH /api/providers/:id.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	var profile models.ProviderProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request body: %v", err))
		return
	}
	p, err := h.Svc.UpdateProfile(c.Param("id"), profile)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateScheduleHandler handles PUT /api/providers/:id/schedule. The schedule
// configuration is replaced wholesale after pure validation.
func (h *ProviderHandler) UpdateScheduleHandler(c *gin.Context) {
	var cfg models.ScheduleConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid request body: %v", err))
		return
	}
	if err := h.Svc.UpdateSchedule(c.Param("id"), cfg); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "schedule updated"})
}

// DeleteProviderHandler handles DELETE /api/providers/:id.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "provider deleted"})
}
