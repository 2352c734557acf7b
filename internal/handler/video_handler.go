package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/service"
)

// VideoHandler handles video requests
type VideoHandler struct {
	videoService service.VideoService
	logger       *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// Create creates a video owned by the caller
func (h *VideoHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	video, err := h.videoService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetByID returns a video by ID
func (h *VideoHandler) GetByID(c *gin.Context) {
	video, err := h.videoService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// List returns videos. Supports ?owner=, ?agent= and ?map= filters; filtered
// listings come back most viewed first.
func (h *VideoHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var filter repository.VideoFilter
	if ownerID := c.Query("owner"); ownerID != "" {
		filter.OwnerID = &ownerID
	}
	if agent := c.Query("agent"); agent != "" {
		filter.Agent = &agent
	}
	if mapID := c.Query("map"); mapID != "" {
		filter.MapID = &mapID
	}

	videos, err := h.videoService.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// Update applies a patch to a video owned by the caller
func (h *VideoHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// RegisterView bumps the view counter and returns the new value
func (h *VideoHandler) RegisterView(c *gin.Context) {
	views, err := h.videoService.RegisterView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ViewsResponse{Views: views})
}

// Delete removes a video owned by the caller
func (h *VideoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Video deleted"})
}
