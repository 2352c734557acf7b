package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/service"
)

// respondError translates service and repository errors into HTTP responses.
// Unexpected errors are logged and surfaced as an opaque 500 so internal
// details never reach a client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "Forbidden",
			Message: err.Error(),
		})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "internal server error",
		})
	}
}

// respondBindError reports a request body or parameter validation failure
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}

// currentUserID returns the authenticated user ID set by AuthMiddleware
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found in context",
		})
		return "", false
	}
	return userID.(string), true
}

// pagination reads skip/limit query parameters with sane bounds
func pagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return skip, limit
}
