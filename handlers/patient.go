package handlers

import (
	"net/http"

	"caresched/models"
	"caresched/services/patient"
	"caresched/utils"

	"github.com/gin-gonic/gin"
)

// PatientHandler exposes patient account management.
type PatientHandler struct {
	Svc patient.PatientService
}

// NewPatientHandler creates a PatientHandler.
func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Svc: svc}
}

// RegisterPatientHandler handles POST /api/patients/register.
func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	var p models.Patient
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

// AuthenticatePatientHandler handles POST /api/patients/login.
func (h *PatientHandler) AuthenticatePatientHandler(c *gin.Context) {
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

// GetPatientByIDHandler handles GET /api/patients/:id.
func (h *PatientHandler) GetPatientByIDHandler(c *gin.Context) {
	// A patient token may only read its own record.
	if patientID, ok := c.Get("patientID"); ok && patientID.(string) != c.Param("id") {
		utils.RespondError(c, utils.NewUnauthorizedError("token does not match the requested patient"))
		return
	}
	p, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
