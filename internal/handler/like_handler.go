package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

// LikeHandler handles reactions on posts, videos and comments
type LikeHandler struct {
	likeService service.LikeService
	logger      *zap.Logger
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likeService service.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		logger:      logger,
	}
}

// Like returns a handler that records a reaction on the given target type.
// The optional request body carries the value (1 or -1, videos only).
func (h *LikeHandler) Like(targetType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req dto.LikeRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondBindError(c, err)
				return
			}
		}

		like, err := h.likeService.Like(c.Request.Context(), userID, targetType, c.Param("id"), req.Value)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusCreated, like)
	}
}

// Unlike returns a handler that removes the caller's reaction on the given
// target type
func (h *LikeHandler) Unlike(targetType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := h.likeService.Unlike(c.Request.Context(), userID, targetType, c.Param("id")); err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Reaction removed"})
	}
}

// GetMine returns a handler that looks up the caller's own reaction on the
// given target type. Responds 404 when the caller has not reacted.
func (h *LikeHandler) GetMine(targetType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		like, err := h.likeService.Get(c.Request.Context(), userID, targetType, c.Param("id"))
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, like)
	}
}

// ListByTarget returns a handler that lists the reactions on the given target
// type
func (h *LikeHandler) ListByTarget(targetType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c)

		likes, err := h.likeService.ListByTarget(c.Request.Context(), targetType, c.Param("id"), skip, limit)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		c.JSON(http.StatusOK, likes)
	}
}

// ListMine lists the authenticated user's reactions
func (h *LikeHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	skip, limit := pagination(c)

	likes, err := h.likeService.ListByUser(c.Request.Context(), userID, skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}
