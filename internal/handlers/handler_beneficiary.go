package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/finbase/corebanking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// beneficiaryHandler handles HTTP requests related to saved counterparties.
type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

// registerBeneficiaryRoutes registers routes related to beneficiaries.
func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := &beneficiaryHandler{beneficiaryService: beneficiaryService}

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.DELETE("/:id", h.deleteBeneficiary)
	}
}

// listBeneficiaries godoc
// @Summary List the user's saved beneficiaries
// @Tags beneficiaries
// @Produce  json
// @Success 200 {array} domain.Beneficiary
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	beneficiaries, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, beneficiaries)
}

// createBeneficiary godoc
// @Summary Save a new beneficiary
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   beneficiary body dto.CreateBeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} domain.Beneficiary
// @Failure 409 {object} map[string]string "Already saved"
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBeneficiary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, beneficiary)
}

// deleteBeneficiary godoc
// @Summary Delete a saved beneficiary
// @Tags beneficiaries
// @Produce  json
// @Param   id path string true "Beneficiary ID"
// @Success 204 "Beneficiary deleted"
// @Failure 404 {object} map[string]string "Beneficiary not found"
// @Security BearerAuth
// @Router /beneficiaries/{id} [delete]
func (h *beneficiaryHandler) deleteBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	beneficiaryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.beneficiaryService.DeleteBeneficiary(c.Request.Context(), beneficiaryID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
