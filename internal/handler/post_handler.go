package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

// PostHandler handles post requests
type PostHandler struct {
	postService service.PostService
	logger      *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// Create creates an unpublished post owned by the caller
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetByID returns a post by ID
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetBySlug returns a post by slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// List returns published posts, newest first. With ?owner=<id> it returns all
// posts of that owner instead.
func (h *PostHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	if ownerID := c.Query("owner"); ownerID != "" {
		posts, err := h.postService.ListByOwner(c.Request.Context(), ownerID, skip, limit)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.postService.ListPublished(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Update applies a patch to a post owned by the caller
func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Publish makes a post visible in public listings
func (h *PostHandler) Publish(c *gin.Context) {
	h.setPublished(c, true, "Post published")
}

// Unpublish removes a post from public listings
func (h *PostHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false, "Post unpublished")
}

func (h *PostHandler) setPublished(c *gin.Context, published bool, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.postService.SetPublished(c.Request.Context(), userID, c.Param("id"), published); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: message})
}

// RegisterView bumps the view counter and returns the new value
func (h *PostHandler) RegisterView(c *gin.Context) {
	views, err := h.postService.RegisterView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ViewsResponse{Views: views})
}

// Delete removes a post owned by the caller
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post deleted"})
}

// AttachTag attaches a tag to a post owned by the caller
func (h *PostHandler) AttachTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.postService.AttachTag(c.Request.Context(), userID, c.Param("id"), c.Param("tagId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tag attached"})
}

// DetachTag detaches a tag from a post owned by the caller
func (h *PostHandler) DetachTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.postService.DetachTag(c.Request.Context(), userID, c.Param("id"), c.Param("tagId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tag detached"})
}

// ListTags lists the tags of a post
func (h *PostHandler) ListTags(c *gin.Context) {
	tags, err := h.postService.ListTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}
