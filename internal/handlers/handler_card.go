package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/finbase/corebanking/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cardHandler handles HTTP requests related to cards.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

// registerCardRoutes registers routes related to cards.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := &cardHandler{cardService: cardService}

	cards := rg.Group("/cards")
	{
		cards.GET("", h.listCards)
		cards.POST("", h.requestCard)
		cards.GET("/:id", h.getCardDetails)
		cards.PATCH("/:id/status", h.updateCardStatus)
		cards.GET("/:id/limits", h.getCardLimits)
		cards.PUT("/:id/limits", h.updateCardLimits)
		cards.DELETE("/:id", h.cancelCard)
	}
}

// listCards godoc
// @Summary List the user's cards
// @Tags cards
// @Produce  json
// @Success 200 {array} dto.CardResponse
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cards, err := h.cardService.GetUserCards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// requestCard godoc
// @Summary Apply for a new card
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   request body dto.AddCardRequest true "Card application"
// @Success 202 {object} dto.CardRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) requestCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.cardService.RequestCard(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// getCardDetails godoc
// @Summary Get card details
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardDetailsResponse
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *cardHandler) getCardDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	details, err := h.cardService.GetCardDetails(c.Request.Context(), cardID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// updateCardStatus godoc
// @Summary Block or reactivate a card
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   id path string true "Card ID"
// @Param   status body dto.CardStatusUpdateRequest true "New status"
// @Success 204 "Status updated"
// @Failure 409 {object} map[string]string "Card cannot transition"
// @Security BearerAuth
// @Router /cards/{id}/status [patch]
func (h *cardHandler) updateCardStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("id")

	var req dto.CardStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCardStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cardService.UpdateCardStatus(c.Request.Context(), cardID, userID, req); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getCardLimits godoc
// @Summary Get card limits and usage
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 200 {object} dto.CardLimitsResponse
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id}/limits [get]
func (h *cardHandler) getCardLimits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limits, err := h.cardService.GetCardLimits(c.Request.Context(), cardID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, limits)
}

// updateCardLimits godoc
// @Summary Set card daily and monthly limits
// @Description Limits are tracked and reported, never enforced by the transfer engine
// @Tags cards
// @Accept  json
// @Produce  json
// @Param   id path string true "Card ID"
// @Param   limits body dto.UpdateCardLimitsRequest true "New limits"
// @Success 204 "Limits updated"
// @Failure 400 {object} map[string]string "Negative limit"
// @Security BearerAuth
// @Router /cards/{id}/limits [put]
func (h *cardHandler) updateCardLimits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("id")

	var req dto.UpdateCardLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCardLimits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cardService.UpdateCardLimits(c.Request.Context(), cardID, userID, req); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// cancelCard godoc
// @Summary Cancel a card permanently
// @Tags cards
// @Produce  json
// @Param   id path string true "Card ID"
// @Success 204 "Card cancelled"
// @Failure 409 {object} map[string]string "Card already cancelled"
// @Security BearerAuth
// @Router /cards/{id} [delete]
func (h *cardHandler) cancelCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cardService.CancelCard(c.Request.Context(), cardID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
