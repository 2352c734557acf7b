package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// Create creates a comment (or a reply) on a post
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListByPost lists a post's comments, oldest first
func (h *CommentHandler) ListByPost(c *gin.Context) {
	skip, limit := pagination(c)

	comments, err := h.commentService.ListByPost(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// ListByUser lists a user's comments, newest first
func (h *CommentHandler) ListByUser(c *gin.Context) {
	skip, limit := pagination(c)

	comments, err := h.commentService.ListByUser(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetByID returns a comment by ID
func (h *CommentHandler) GetByID(c *gin.Context) {
	comment, err := h.commentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Update edits a comment written by the caller
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete logically deletes a comment written by the caller
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted"})
}
