package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// @Summary List bookings
// @Tags Admin
// @Produce json
// @Param counsellorId query string false "Counsellor ID"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} envelope "data.items, data.total"
// @Failure 400 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/bookings [get]
func (h *Handler) getBookings(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := domain.BookingFilter{Limit: limit, Offset: offset}

	if v := c.Query("counsellorId"); v != "" {
		filter.CounsellorID = &v
	}
	if v := c.Query("status"); v != "" {
		status := domain.BookingStatus(v)
		filter.Status = &status
	}
	if v := c.Query("startDate"); v != "" {
		filter.StartDate = &v
	}
	if v := c.Query("endDate"); v != "" {
		filter.EndDate = &v
	}

	bookings, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	paginatedSuccessResponse(c, bookings, total, limit, offset)
}

// @Summary Get booking
// @Tags Admin
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Booking not found")
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Change booking status
// @Tags Admin
// @Accept json
// @Param id path int true "Booking ID"
// @Param input body domain.UpdateBookingStatusDTO true "New status"
// @Success 204
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Failure 409 {object} envelope "slot was taken while the booking was cancelled"
// @Security ApiKeyAuth
// @Router /api/admin/bookings/{id}/status [patch]
func (h *Handler) updateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateBookingStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		badRequestResponse(c, "Status must be one of pending, confirmed, cancelled, completed")
		return
	}

	if err := h.services.Booking.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		h.handleServiceError(c, err, "Booking not found")
		return
	}

	if adminID, err := getAdminID(c); err == nil {
		h.logger.Info("booking status changed by admin",
			zap.Int64("bookingId", id),
			zap.Int64("adminId", adminID),
			zap.String("status", string(input.Status)),
		)
	}

	noContentResponse(c)
}

// @Summary Resend booking notifications
// @Description Re-runs meeting link generation and the confirmation emails
// @Tags Admin
// @Param id path int true "Booking ID"
// @Success 202 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/bookings/{id}/notify [post]
func (h *Handler) renotifyBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Booking.Renotify(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Booking not found")
		return
	}

	successResponse(c, http.StatusAccepted, gin.H{"queued": true})
}
