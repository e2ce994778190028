package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// @Summary List counsellors
// @Description Returns active counsellors, optionally only those offering the given session type
// @Tags Counsellors
// @Produce json
// @Param bookingType query string false "online or in-person"
// @Success 200 {object} envelope "data.counsellors"
// @Failure 400 {object} envelope
// @Failure 500 {object} envelope
// @Router /api/counsellors [get]
func (h *Handler) getCounsellors(c *gin.Context) {
	var bookingType *domain.BookingType
	if raw := c.Query("bookingType"); raw != "" {
		bt := domain.BookingType(raw)
		bookingType = &bt
	}

	counsellors, err := h.services.Counsellor.List(c.Request.Context(), bookingType)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"counsellors": counsellors})
}

// @Summary List all counsellors
// @Description Includes deactivated counsellors
// @Tags Admin
// @Produce json
// @Success 200 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors [get]
func (h *Handler) adminListCounsellors(c *gin.Context) {
	counsellors, err := h.services.Counsellor.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"counsellors": counsellors})
}

// @Summary Get counsellor
// @Tags Admin
// @Produce json
// @Param id path string true "Counsellor ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors/{id} [get]
func (h *Handler) getCounsellorByID(c *gin.Context) {
	counsellor, err := h.services.Counsellor.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "Counsellor not found")
		return
	}

	successResponse(c, http.StatusOK, counsellor)
}

// @Summary Create counsellor
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body domain.CreateCounsellorDTO true "Counsellor"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors [post]
func (h *Handler) createCounsellor(c *gin.Context) {
	var input domain.CreateCounsellorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid counsellor payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	counsellor, err := h.services.Counsellor.Create(c.Request.Context(), input)
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	createdResponse(c, counsellor)
}

// @Summary Update counsellor
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Counsellor ID"
// @Param input body domain.UpdateCounsellorDTO true "Fields to change"
// @Success 204
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors/{id} [put]
func (h *Handler) updateCounsellor(c *gin.Context) {
	var input domain.UpdateCounsellorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid counsellor payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.services.Counsellor.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		h.handleServiceError(c, err, "Counsellor not found")
		return
	}

	noContentResponse(c)
}

// @Summary Deactivate counsellor
// @Description The counsellor disappears from the directory; existing bookings are kept
// @Tags Admin
// @Param id path string true "Counsellor ID"
// @Success 204
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors/{id} [delete]
func (h *Handler) deleteCounsellor(c *gin.Context) {
	if err := h.services.Counsellor.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err, "Counsellor not found")
		return
	}

	noContentResponse(c)
}

// @Summary Upload counsellor photo
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Counsellor ID"
// @Param photo formData file true "Image file"
// @Success 200 {object} envelope "data.photoUrl"
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Security ApiKeyAuth
// @Router /api/admin/counsellors/{id}/photo [post]
func (h *Handler) uploadCounsellorPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "Photo file is required")
		return
	}
	if file.Size > maxPhotoBytes {
		badRequestResponse(c, "Photo must be 5 MB or smaller")
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded photo", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil {
		h.logger.Error("failed to read uploaded photo", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	photoURL, err := h.services.Counsellor.UploadPhoto(c.Request.Context(), c.Param("id"), data, file.Filename)
	if err != nil {
		h.handleServiceError(c, err, "Counsellor not found")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"photoUrl": photoURL})
}
