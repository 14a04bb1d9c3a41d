package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmarket/internal/domain"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// @Summary Search the lawyer directory
// @Description Returns verified lawyers matching the given filters
// @Tags Lawyers
// @Produce json
// @Param q query string false "Free-text search over names and practice areas"
// @Param practice_area query string false "Exact practice area"
// @Param price_min query number false "Minimum hourly rate"
// @Param price_max query number false "Maximum hourly rate"
// @Param min_rating query int false "Minimum average rating"
// @Param location query string false "Exact location"
// @Param min_experience query int false "Minimum years of experience"
// @Success 200 {array} domain.LawyerProfile
// @Failure 400 {object} errorResponseBody "Malformed filter value"
// @Router /lawyers [get]
func (h *Handler) searchLawyers(c *gin.Context) {
	filters, err := parseSearchFilters(c)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	result, err := h.services.Lawyer.Search(c.Request.Context(), filters, c.Query("q"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, result)
}

func parseSearchFilters(c *gin.Context) (domain.SearchFilters, error) {
	var filters domain.SearchFilters

	filters.PracticeArea = c.Query("practice_area")
	filters.Location = c.Query("location")

	if raw := c.Query("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, domain.NewInvalidRequest("price_min", "must be a number")
		}
		filters.PriceMin = &v
	}

	if raw := c.Query("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, domain.NewInvalidRequest("price_max", "must be a number")
		}
		filters.PriceMax = &v
	}

	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filters, domain.NewInvalidRequest("min_rating", "must be an integer")
		}
		filters.MinRating = v
	}

	if raw := c.Query("min_experience"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filters, domain.NewInvalidRequest("min_experience", "must be an integer")
		}
		filters.MinExperience = v
	}

	return filters.Normalized(), nil
}

// @Summary Directory facets
// @Description Distinct practice areas and locations for the filter sidebar
// @Tags Lawyers
// @Produce json
// @Success 200 {object} domain.DirectoryFacets
// @Router /lawyers/facets [get]
func (h *Handler) getDirectoryFacets(c *gin.Context) {
	facets, err := h.services.Lawyer.Facets(c.Request.Context())
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, facets)
}

// @Summary Lawyer profile by ID
// @Tags Lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Success 200 {object} domain.LawyerProfile
// @Failure 404 {object} errorResponseBody "Lawyer not found"
// @Router /lawyers/{id} [get]
func (h *Handler) getLawyerByID(c *gin.Context) {
	lawyer, err := h.services.Lawyer.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, lawyer)
}

// @Summary Reviews for a lawyer
// @Tags Lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} paginatedResponse
// @Router /lawyers/{id}/reviews [get]
func (h *Handler) getLawyerReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, total, err := h.services.Review.ListByLawyer(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, reviews, total, limit, offset)
}

// @Summary Create a lawyer profile
// @Description Creates the profile for the authenticated lawyer account
// @Tags Lawyers
// @Accept json
// @Produce json
// @Param input body domain.CreateLawyerDTO true "Profile data"
// @Success 201 {object} map[string]interface{} "ID of the created profile"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Security ApiKeyAuth
// @Router /lawyers [post]
func (h *Handler) createLawyer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateLawyerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed lawyer payload", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Lawyer.Create(c.Request.Context(), userID, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Update a lawyer profile
// @Tags Lawyers
// @Accept json
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param input body domain.UpdateLawyerDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Not the profile owner"
// @Security ApiKeyAuth
// @Router /lawyers/{id} [put]
func (h *Handler) updateLawyer(c *gin.Context) {
	lawyerID := c.Param("id")
	if err := h.authorizeLawyerOwner(c, lawyerID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	var req domain.UpdateLawyerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed lawyer update payload", zap.Error(err))
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Lawyer.Update(c.Request.Context(), lawyerID, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "profile updated")
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

// @Summary Verify a lawyer
// @Description Admin toggle for directory visibility
// @Tags Lawyers
// @Accept json
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param input body verifyRequest true "Verification flag"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Admin role required"
// @Failure 404 {object} errorResponseBody "Lawyer not found"
// @Security ApiKeyAuth
// @Router /lawyers/{id}/verify [put]
func (h *Handler) setLawyerVerified(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Lawyer.SetVerified(c.Request.Context(), c.Param("id"), req.Verified); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "verification updated")
}

// @Summary Upload a profile avatar
// @Tags Lawyers
// @Accept mpfd
// @Produce json
// @Param id path string true "Lawyer ID"
// @Param avatar formData file true "Image file"
// @Success 200 {object} map[string]interface{} "Public URL of the stored avatar"
// @Failure 400 {object} errorResponseBody "Missing or oversized file"
// @Security ApiKeyAuth
// @Router /lawyers/{id}/avatar [post]
func (h *Handler) uploadLawyerAvatar(c *gin.Context) {
	lawyerID := c.Param("id")
	if err := h.authorizeLawyerOwner(c, lawyerID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		badRequestResponse(c, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		badRequestResponse(c, "avatar file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("opening uploaded avatar failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		h.logger.Error("reading uploaded avatar failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Lawyer.UploadAvatar(c.Request.Context(), lawyerID, data, fileHeader.Filename)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"avatar_url": url})
}

// @Summary Remove the profile avatar
// @Tags Lawyers
// @Produce json
// @Param id path string true "Lawyer ID"
// @Success 200 {object} messageResponseType
// @Security ApiKeyAuth
// @Router /lawyers/{id}/avatar [delete]
func (h *Handler) deleteLawyerAvatar(c *gin.Context) {
	lawyerID := c.Param("id")
	if err := h.authorizeLawyerOwner(c, lawyerID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	if err := h.services.Lawyer.DeleteAvatar(c.Request.Context(), lawyerID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "avatar removed")
}

// authorizeLawyerOwner admits the profile owner and admins.
func (h *Handler) authorizeLawyerOwner(c *gin.Context, lawyerID string) error {
	userID, err := getUserID(c)
	if err != nil {
		return domain.ErrUnauthorized
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleAdmin {
		return nil
	}

	lawyer, err := h.services.Lawyer.GetByID(c.Request.Context(), lawyerID)
	if err != nil {
		return err
	}

	if lawyer.UserID != userID {
		return domain.ErrForbidden
	}

	return nil
}
