package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

// TagHandler handles tag requests
type TagHandler struct {
	tagService service.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// Create creates a tag
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetByID returns a tag by ID
func (h *TagHandler) GetByID(c *gin.Context) {
	tag, err := h.tagService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// GetByName returns a tag by its exact name
func (h *TagHandler) GetByName(c *gin.Context) {
	tag, err := h.tagService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// List lists tags ordered by name
func (h *TagHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	tags, err := h.tagService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// Update applies a patch to a tag
func (h *TagHandler) Update(c *gin.Context) {
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

// Delete removes a tag
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tagService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tag deleted"})
}
