package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmarket/internal/domain"
)

// @Summary Request a consultation
// @Description Books a time slot with a lawyer; the price is derived server-side
// @Tags Bookings
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Booking request"
// @Success 201 {object} domain.Booking
// @Failure 400 {object} errorResponseBody "Validation error naming the field"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Failure 404 {object} errorResponseBody "Lawyer not found"
// @Failure 409 {object} errorResponseBody "Slot already booked"
// @Failure 503 {object} errorResponseBody "Store unavailable"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	clientID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	// Strict decode: a payload trying to dictate the price (or any
	// other unknown field) is rejected instead of silently ignored.
	var req domain.CreateBookingDTO
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.Warn("malformed booking payload", zap.Error(err))
		badRequestResponse(c, "malformed request body: unknown or invalid fields")
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), clientID, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, booking)
}

// @Summary Booking by ID
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} domain.Booking
// @Failure 403 {object} errorResponseBody "Not a participant"
// @Failure 404 {object} errorResponseBody "Booking not found"
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	booking, err := h.loadBookingForParticipant(c)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary List bookings
// @Description Clients see their own bookings, lawyers their appointments, admins everything
// @Tags Bookings
// @Produce json
// @Param status query string false "Filter by status"
// @Param from_date query string false "Earliest date (YYYY-MM-DD)"
// @Param to_date query string false "Latest date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	role, _ := getUserRole(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := domain.BookingFilter{Limit: limit, Offset: offset}

	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("from_date"); raw != "" {
		filter.FromDate = &raw
	}
	if raw := c.Query("to_date"); raw != "" {
		filter.ToDate = &raw
	}

	switch role {
	case domain.UserRoleAdmin:
		// unrestricted
	case domain.UserRoleLawyer:
		lawyer, err := h.services.Lawyer.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			domainErrorResponse(c, err)
			return
		}
		filter.LawyerID = &lawyer.ID
	default:
		filter.ClientID = &userID
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, bookings, total, limit, offset)
}

// @Summary Free slots for a lawyer and date
// @Tags Bookings
// @Produce json
// @Param lawyer_id query string true "Lawyer ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} string
// @Failure 400 {object} errorResponseBody "Missing or malformed parameters"
// @Failure 404 {object} errorResponseBody "Lawyer not found"
// @Security ApiKeyAuth
// @Router /bookings/free-slots [get]
func (h *Handler) getFreeSlots(c *gin.Context) {
	lawyerID := c.Query("lawyer_id")
	if lawyerID == "" {
		domainErrorResponse(c, domain.NewInvalidRequest("lawyer_id", "is required"))
		return
	}
	date := c.Query("date")
	if date == "" {
		domainErrorResponse(c, domain.NewInvalidRequest("date", "is required"))
		return
	}

	slots, err := h.services.Booking.FreeSlots(c.Request.Context(), lawyerID, date)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Confirm a booking
// @Description Lawyer accepts a pending booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Illegal status transition"
// @Failure 403 {object} errorResponseBody "Not the booked lawyer"
// @Security ApiKeyAuth
// @Router /bookings/{id}/confirm [post]
func (h *Handler) confirmBooking(c *gin.Context) {
	h.transitionBooking(c, domain.BookingStatusConfirmed, false)
}

// @Summary Cancel a booking
// @Description Either participant cancels a pending or confirmed booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Illegal status transition"
// @Security ApiKeyAuth
// @Router /bookings/{id}/cancel [post]
func (h *Handler) cancelBooking(c *gin.Context) {
	h.transitionBooking(c, domain.BookingStatusCancelled, true)
}

// @Summary Complete a booking
// @Description Lawyer marks a confirmed consultation as held
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Illegal status transition"
// @Failure 403 {object} errorResponseBody "Not the booked lawyer"
// @Security ApiKeyAuth
// @Router /bookings/{id}/complete [post]
func (h *Handler) completeBooking(c *gin.Context) {
	h.transitionBooking(c, domain.BookingStatusCompleted, false)
}

// transitionBooking applies a lifecycle change after the access check:
// the booked lawyer (and admins) may drive any transition, the client
// only cancellation.
func (h *Handler) transitionBooking(c *gin.Context, next domain.BookingStatus, clientAllowed bool) {
	booking, err := h.loadBookingForParticipant(c)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	userID, _ := getUserID(c)
	role, _ := getUserRole(c)
	if role != domain.UserRoleAdmin && booking.ClientID == userID && !clientAllowed {
		isAlsoLawyer := h.isBookedLawyer(c, userID, booking)
		if !isAlsoLawyer {
			forbiddenResponse(c)
			return
		}
	}

	if err := h.services.Booking.UpdateStatus(c.Request.Context(), booking.ID, next); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "booking "+string(next))
}

// loadBookingForParticipant fetches the booking and rejects users that
// are neither the client, the booked lawyer, nor an admin.
func (h *Handler) loadBookingForParticipant(c *gin.Context) (*domain.Booking, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}

	role, _ := getUserRole(c)
	if role == domain.UserRoleAdmin || booking.ClientID == userID {
		return booking, nil
	}

	if h.isBookedLawyer(c, userID, booking) {
		return booking, nil
	}

	return nil, domain.ErrForbidden
}

func (h *Handler) isBookedLawyer(c *gin.Context, userID string, booking *domain.Booking) bool {
	lawyer, err := h.services.Lawyer.GetByUserID(c.Request.Context(), userID)
	return err == nil && lawyer != nil && lawyer.ID == booking.LawyerID
}
