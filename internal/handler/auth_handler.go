package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

const refreshCookiePath = "/api/v1/auth/refresh"

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// setRefreshCookie stores the refresh token in an httpOnly cookie scoped to
// the refresh endpoint
func setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie("refresh_token", token, maxAge, refreshCookiePath, "", true, true)
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new user with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, result.Response.RefreshToken, result.RefreshTokenExpiresIn)

	c.JSON(http.StatusCreated, result.Response)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with username or email plus password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, result.Response.RefreshToken, result.RefreshTokenExpiresIn)

	c.JSON(http.StatusOK, result.Response)
}

// Refresh handles token refresh. The refresh token is read from the httpOnly
// cookie when present, falling back to the request body.
// @Summary Refresh tokens
// @Description Rotate the refresh token and issue a new token pair
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		refreshToken = req.RefreshToken
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, result.Response.RefreshToken, result.RefreshTokenExpiresIn)

	c.JSON(http.StatusOK, result.Response)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the current refresh token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	refreshToken, _ := c.Cookie("refresh_token")
	if refreshToken == "" {
		var req dto.LogoutRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if err := h.authService.Logout(c.Request.Context(), userID, refreshToken); err != nil {
		respondError(c, h.logger, err)
		return
	}

	setRefreshCookie(c, "", -1)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}

// ChangePassword handles a password change for the authenticated user
// @Summary Change password
// @Description Verify the current password and set a new one. All sessions are revoked.
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Password change request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Password changed successfully",
	})
}

// ListSessions lists the authenticated user's refresh sessions
// @Summary List sessions
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Session
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/sessions [get]
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessions, err := h.authService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RequestPasswordReset starts a password reset flow. The response is the same
// whether or not the email is registered.
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Password reset request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if token != "" {
		// Token delivery happens out of band. Until the mail pipeline is wired
		// up the token is only logged.
		h.logger.Info("password reset requested", zap.String("email", req.Email))
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "If the email is registered, a reset link has been sent",
	})
}

// ConfirmPasswordReset completes a password reset flow
// @Summary Confirm password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetConfirmRequest true "Password reset confirmation"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/password/reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Password has been reset",
	})
}

// RequestEmailVerification creates an email verification token for the
// authenticated user
// @Summary Request email verification
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/email/verify [post]
func (h *AuthHandler) RequestEmailVerification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	_, err := h.authService.RequestEmailVerification(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Verification email has been sent",
	})
}

// ConfirmEmailVerification consumes a verification token
// @Summary Confirm email verification
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.EmailVerifyConfirmRequest true "Email verification confirmation"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/email/verify/confirm [post]
func (h *AuthHandler) ConfirmEmailVerification(c *gin.Context) {
	var req dto.EmailVerifyConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ConfirmEmailVerification(c.Request.Context(), req.Token); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Email verified successfully",
	})
}
