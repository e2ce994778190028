package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// @Summary Available time slots
// @Description Slots for one counsellor and session type across the booking window
// @Tags Counselling
// @Produce json
// @Param counsellorId query string true "Counsellor ID"
// @Param bookingType query string true "online or in-person"
// @Success 200 {object} envelope "data.availableSlots"
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Router /api/counselling [get]
func (h *Handler) getAvailableSlots(c *gin.Context) {
	counsellorID := strings.TrimSpace(c.Query("counsellorId"))
	if counsellorID == "" {
		badRequestResponse(c, "counsellorId is required")
		return
	}

	bookingType := domain.BookingType(c.DefaultQuery("bookingType", string(domain.BookingTypeOnline)))

	slots, err := h.services.Availability.Slots(c.Request.Context(), counsellorID, bookingType)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"availableSlots": slots})
}

// @Summary Book a counselling session
// @Description Repeating a request with the same Idempotency-Key returns the original booking
// @Tags Counselling
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-generated key, wins over the body field"
// @Param input body domain.CreateBookingRequest true "Booking form"
// @Success 201 {object} envelope "data is a BookingResult"
// @Failure 400 {object} envelope "errors lists every invalid field"
// @Failure 404 {object} envelope
// @Failure 409 {object} envelope "Slot no longer available"
// @Failure 429 {object} envelope
// @Router /api/counselling [post]
func (h *Handler) createBooking(c *gin.Context) {
	var input domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid booking payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	if key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader)); key != "" {
		input.IdempotencyKey = key
	}

	result, err := h.services.Booking.Create(c.Request.Context(), input)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	createdResponse(c, result)
}

// @Summary Look up a booking
// @Tags Counselling
// @Produce json
// @Param confirmationNumber path string true "e.g. CN-20250301-1A2B3C"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /api/counselling/{confirmationNumber} [get]
func (h *Handler) getBookingByConfirmationNumber(c *gin.Context) {
	booking, err := h.services.Booking.GetByConfirmationNumber(c.Request.Context(), c.Param("confirmationNumber"))
	if err != nil {
		h.handleServiceError(c, err, "Booking not found")
		return
	}

	successResponse(c, http.StatusOK, booking)
}
