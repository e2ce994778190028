package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// @Summary List schedules
// @Tags Admin
// @Produce json
// @Param counsellorId query string false "Counsellor ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/schedules [get]
func (h *Handler) getSchedules(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := domain.ScheduleFilter{Limit: limit, Offset: offset}

	if v := c.Query("counsellorId"); v != "" {
		filter.CounsellorID = &v
	}
	if v := c.Query("startDate"); v != "" {
		date, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			badRequestResponse(c, "startDate must be in YYYY-MM-DD format")
			return
		}
		filter.StartDate = &date
	}
	if v := c.Query("endDate"); v != "" {
		date, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			badRequestResponse(c, "endDate must be in YYYY-MM-DD format")
			return
		}
		filter.EndDate = &date
	}

	schedules, total, err := h.services.Schedule.List(c.Request.Context(), filter)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	paginatedSuccessResponse(c, schedules, total, limit, offset)
}

// @Summary Get schedule
// @Tags Admin
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/schedules/{id} [get]
func (h *Handler) getScheduleByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.services.Schedule.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Schedule not found")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Create schedule
// @Description Adds one working day for a counsellor; slots are cut from it
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body domain.CreateScheduleDTO true "Schedule"
// @Success 201 {object} envelope "data.id"
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var input domain.CreateScheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid schedule payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	id, err := h.services.Schedule.Create(c.Request.Context(), input)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Delete schedule
// @Description Existing bookings are not affected
// @Tags Admin
// @Param id path int true "Schedule ID"
// @Success 204
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Schedule.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Schedule not found")
		return
	}

	noContentResponse(c)
}
