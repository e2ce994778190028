package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/domain"
	"churchcms/internal/service"
	"churchcms/internal/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// Counsellor photos larger than this are rejected before reaching storage.
	maxPhotoBytes = 5 << 20
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	limiter  *ipRateLimiter
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		limiter:  newIPRateLimiter(config.RateLimit.BookingsPerMinute, config.RateLimit.Burst),
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/counsellors", h.getCounsellors)

		counselling := api.Group("/counselling")
		{
			counselling.GET("", h.getAvailableSlots)
			counselling.POST("", h.rateLimitMiddleware(), h.createBooking)
			counselling.GET("/:confirmationNumber", h.getBookingByConfirmationNumber)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.rateLimitMiddleware(), h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		admin := api.Group("/admin", h.authMiddleware())
		{
			counsellors := admin.Group("/counsellors")
			{
				counsellors.GET("", h.adminListCounsellors)
				counsellors.POST("", h.createCounsellor)
				counsellors.GET("/:id", h.getCounsellorByID)
				counsellors.PUT("/:id", h.updateCounsellor)
				counsellors.DELETE("/:id", h.deleteCounsellor)
				counsellors.POST("/:id/photo", h.uploadCounsellorPhoto)
			}

			schedules := admin.Group("/schedules")
			{
				schedules.GET("", h.getSchedules)
				schedules.POST("", h.createSchedule)
				schedules.GET("/:id", h.getScheduleByID)
				schedules.DELETE("/:id", h.deleteSchedule)
			}

			bookings := admin.Group("/bookings")
			{
				bookings.GET("", h.getBookings)
				bookings.GET("/:id", h.getBookingByID)
				bookings.PATCH("/:id/status", h.updateBookingStatus)
				bookings.POST("/:id/notify", h.renotifyBooking)
			}
		}
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} envelope
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	successResponse(c, http.StatusOK, gin.H{
		"name":    h.config.Name,
		"version": h.config.Version,
	})
}

// handleServiceError maps service errors onto the response envelope.
// notFound is used for domain.ErrNotFound.
func (h *Handler) handleServiceError(c *gin.Context, err error, notFound string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		validationResponse(c, verr.Messages(service.FieldOrder()))
	case errors.Is(err, domain.ErrSlotUnavailable):
		errorResponse(c, http.StatusConflict, "Slot no longer available")
	case errors.Is(err, domain.ErrCounsellorNotFound):
		notFoundResponse(c, "Counsellor not found")
	case errors.Is(err, domain.ErrModalityUnsupported):
		badRequestResponse(c, "Counsellor does not offer this session type")
	case errors.Is(err, domain.ErrNotFound):
		notFoundResponse(c, notFound)
	case errors.Is(err, domain.ErrInvalidCredentials):
		unauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, domain.ErrInvalidToken):
		unauthorizedResponse(c, "Invalid or expired token")
	case errors.Is(err, domain.ErrInactiveAccount):
		errorResponse(c, http.StatusForbidden, "Account is deactivated")
	case errors.Is(err, storage.ErrEmptyFile):
		badRequestResponse(c, "File is empty")
	case errors.Is(err, storage.ErrNotImage):
		badRequestResponse(c, "File must be an image")
	default:
		_ = c.Error(err)
		internalServerErrorResponse(c)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
