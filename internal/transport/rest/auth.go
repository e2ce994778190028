package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Credentials"
// @Success 200 {object} envelope "data is a token pair"
// @Failure 400 {object} envelope
// @Failure 401 {object} envelope
// @Failure 403 {object} envelope "account deactivated"
// @Router /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	tokens, err := h.services.Auth.Login(c.Request.Context(), input, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Refresh tokens
// @Description The refresh token is single use; a new pair is returned
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Failure 401 {object} envelope
// @Router /api/auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid refresh payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), input.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Logout
// @Tags Auth
// @Accept json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 204
// @Failure 400 {object} envelope
// @Router /api/auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid logout payload", zap.Error(err))
		badRequestResponse(c, "Invalid request body")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		h.handleServiceError(c, err, "")
		return
	}

	noContentResponse(c)
}
