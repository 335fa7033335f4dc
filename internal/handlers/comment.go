package handlers

import (
	"net/http"

	"vantage/internal/middleware"
	"vantage/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *Services
}

func NewCommentHandler(svc *Services) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type commentRequest struct {
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`
}

// respondThread 写操作之后重新读取整棵评论树返回
func (h *CommentHandler) respondThread(c *gin.Context, code int, ideaID uint) {
	thread, err := h.svc.Comments.Thread(c.Request.Context(), ideaID, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(code, gin.H{"idea_id": ideaID, "comments": thread})
}

// Thread GET /api/ideas/:id/comments
func (h *CommentHandler) Thread(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.respondThread(c, http.StatusOK, id)
}

// Create POST /api/ideas/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid body")
		return
	}
	if _, err := h.svc.Comments.Post(c.Request.Context(), id, req.ParentID, userID, req.Content); err != nil {
		respondError(c, err)
		return
	}
	h.respondThread(c, http.StatusCreated, id)
}

// Update PATCH /api/comments/:cid
func (h *CommentHandler) Update(c *gin.Context) {
	cid, ok := paramID(c, "cid")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid body")
		return
	}
	comment, err := h.svc.Comments.Edit(c.Request.Context(), cid, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondThread(c, http.StatusOK, comment.IdeaID)
}

// Delete DELETE /api/comments/:cid
func (h *CommentHandler) Delete(c *gin.Context) {
	cid, ok := paramID(c, "cid")
	if !ok {
		return
	}
	comment, err := h.svc.Comments.Delete(c.Request.Context(), cid, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondThread(c, http.StatusOK, comment.IdeaID)
}

// Like POST /api/comments/:cid/like
func (h *CommentHandler) Like(c *gin.Context) {
	cid, ok := paramID(c, "cid")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	var req toggleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			JSONError(c, http.StatusBadRequest, "Invalid body")
			return
		}
	}

	ctx := c.Request.Context()
	ideaID, err := h.svc.Comments.IdeaOf(ctx, cid)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.svc.Toggles.Toggle(ctx, services.KindCommentLike, cid, userID, req.Active); err != nil {
		respondError(c, err)
		return
	}
	h.respondThread(c, http.StatusOK, ideaID)
}
