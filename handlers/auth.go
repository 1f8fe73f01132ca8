package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/higordev223/salute-child/config"
	"github.com/higordev223/salute-child/utils"
)

// PatientTokenHandler handles POST /api/patients/token. The clinic portal
// backend exchanges its shared key for a patient-scoped JWT that the booking
// widget then carries on wizard calls.
func PatientTokenHandler(c *gin.Context) {
	var input struct {
		PatientID int `json:"patientId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	portalKey := config.AppConfig.PortalKey
	if portalKey == "" || c.GetHeader("X-Portal-Key") != portalKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid portal key"})
		return
	}

	token, err := utils.GeneratePatientToken(input.PatientID)
	if err != nil {
		utils.GetLogger().Error("failed to sign patient token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign patient token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
