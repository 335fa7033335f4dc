package handlers

import (
	"net/http"

	"vantage/internal/middleware"
	"vantage/internal/services"
	"vantage/internal/utils"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	svc *Services
}

func NewIdeaHandler(svc *Services) *IdeaHandler {
	return &IdeaHandler{svc: svc}
}

type toggleRequest struct {
	Active bool `json:"active"`
}

type generateRequest struct {
	IdeaID uint `json:"idea_id"`
}

// Index 首页：想法列表
func (h *IdeaHandler) Index(c *gin.Context) {
	var filter services.IdeaFilter
	_ = c.ShouldBindQuery(&filter)

	ctx := c.Request.Context()
	page, err := h.svc.Ideas.List(ctx, filter)
	if err != nil {
		_ = c.Error(err)
		RenderError(c, http.StatusInternalServerError, "Failed to load ideas")
		return
	}
	options, err := h.svc.Ideas.FilterOptions(ctx)
	if err != nil {
		_ = c.Error(err)
		RenderError(c, http.StatusInternalServerError, "Failed to load ideas")
		return
	}
	saved, err := h.svc.Ideas.SavedIDs(ctx, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
	}

	Render(c, http.StatusOK, "idea/list.html", gin.H{
		"Title":       "Ideas",
		"Page":        page,
		"Filter":      filter,
		"Options":     options,
		"Saved":       saved,
		"Leaderboard": leaderboardState(c, h.svc.Panels),
	})
}

// Detail 想法详情页
func (h *IdeaHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Idea not found")
		return
	}

	ctx := c.Request.Context()
	viewer := middleware.CurrentUserID(c)

	idea, err := h.svc.Ideas.Get(ctx, id)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			RenderError(c, http.StatusNotFound, "Idea not found")
			return
		}
		_ = c.Error(err)
		RenderError(c, http.StatusInternalServerError, "Failed to load idea")
		return
	}

	likes, _ := h.svc.Toggles.State(ctx, services.KindIdeaLike, id, viewer)
	saved, _ := h.svc.Toggles.State(ctx, services.KindSave, id, viewer)
	thread, err := h.svc.Comments.Thread(ctx, id, viewer)
	if err != nil {
		_ = c.Error(err)
	}

	Render(c, http.StatusOK, "idea/detail.html", gin.H{
		"Title":       idea.Title,
		"Idea":        idea,
		"ConceptHTML": utils.RenderMarkdown(idea.AISaaSIdea),
		"Likes":       likes,
		"Saved":       saved,
		"Comments":    thread,
	})
}

// List GET /api/ideas
func (h *IdeaHandler) List(c *gin.Context) {
	var filter services.IdeaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid query")
		return
	}

	ctx := c.Request.Context()
	page, err := h.svc.Ideas.List(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	options, err := h.svc.Ideas.FilterOptions(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ideas":       page.Ideas,
		"total":       page.Total,
		"page":        page.Page,
		"total_pages": page.TotalPages,
		"filters":     options,
	})
}

// Show GET /api/ideas/:id
func (h *IdeaHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	viewer := middleware.CurrentUserID(c)

	idea, err := h.svc.Ideas.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	likes, err := h.svc.Toggles.State(ctx, services.KindIdeaLike, id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	saved, err := h.svc.Toggles.State(ctx, services.KindSave, id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"idea": idea, "likes": likes, "saved": saved})
}

// Generate POST /api/llm-idea
func (h *IdeaHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IdeaID == 0 {
		JSONError(c, http.StatusBadRequest, "Missing idea_id")
		return
	}

	gen, err := h.svc.Generator.Generate(c.Request.Context(), req.IdeaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (h *IdeaHandler) toggle(c *gin.Context, kind services.JoinKind) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req toggleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			JSONError(c, http.StatusBadRequest, "Invalid body")
			return
		}
	}

	state, err := h.svc.Toggles.Toggle(c.Request.Context(), kind, id, middleware.CurrentUserID(c), req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Like POST /api/ideas/:id/like，body 里的 active 为当前是否已点赞
func (h *IdeaHandler) Like(c *gin.Context) {
	h.toggle(c, services.KindIdeaLike)
}

// Save POST /api/ideas/:id/save
func (h *IdeaHandler) Save(c *gin.Context) {
	h.toggle(c, services.KindSave)
}

// Saved GET /api/saved
func (h *IdeaHandler) Saved(c *gin.Context) {
	ideas, err := h.svc.Ideas.SavedIdeas(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}
