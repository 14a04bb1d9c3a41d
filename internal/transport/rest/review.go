package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmarket/internal/domain"
)

// @Summary Leave a review
// @Description Reviews a completed booking; one review per booking
// @Tags Reviews
// @Accept json
// @Produce json
// @Param input body domain.CreateReviewDTO true "Review data"
// @Success 201 {object} map[string]interface{} "ID of the created review"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 403 {object} errorResponseBody "Not the booking's client"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Security ApiKeyAuth
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed review payload", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Review.Create(c.Request.Context(), clientID, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}
