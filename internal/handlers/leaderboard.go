package handlers

import (
	"errors"
	"net/http"

	"vantage/internal/services"
	"vantage/internal/viewstate"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const visitorSessionKey = "visitor"

type LeaderboardHandler struct {
	svc *Services
}

func NewLeaderboardHandler(svc *Services) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// visitorID 会话里的访客 ID，首次访问时生成并写回 cookie
func visitorID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(visitorSessionKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Set(visitorSessionKey, id)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	return id
}

// leaderboardState 页面渲染用，不为新访客分配 ID
func leaderboardState(c *gin.Context, store *viewstate.Store) *viewstate.Leaderboard {
	id, _ := sessions.Default(c).Get(visitorSessionKey).(string)
	if id == "" {
		return viewstate.NewLeaderboard()
	}
	state := store.Get(id)
	return &state
}

// load 生成排行榜，结果只在令牌仍是该访客最新令牌时生效
func (h *LeaderboardHandler) load(c *gin.Context, visitor, token string, refresh bool) {
	board, err := h.svc.Leaderboard.Get(c.Request.Context(), refresh)

	var applied bool
	if err != nil {
		message := "Failed to generate the leaderboard"
		if errors.Is(err, services.ErrNoIdeas) {
			message = "No ideas found"
		}
		state := h.svc.Panels.Update(visitor, func(l *viewstate.Leaderboard) {
			applied = l.Fail(token, message)
		})
		if !applied {
			c.JSON(http.StatusOK, gin.H{"state": state, "stale": true})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": message, "state": state})
		return
	}

	state := h.svc.Panels.Update(visitor, func(l *viewstate.Leaderboard) {
		applied = l.Resolve(token)
	})
	if !applied {
		// 期间已有刷新或收起，丢弃这次结果
		c.JSON(http.StatusOK, gin.H{"state": state, "stale": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "leaderboard": board})
}

// Show GET /api/ai-top-ideas
func (h *LeaderboardHandler) Show(c *gin.Context) {
	visitor := visitorID(c)
	var token string
	state := h.svc.Panels.Update(visitor, func(l *viewstate.Leaderboard) {
		token = l.Show()
	})

	// 失败状态只能通过 refresh 重新加载
	if state.Status == viewstate.Failed {
		c.JSON(http.StatusOK, gin.H{"state": state})
		return
	}
	if state.Status == viewstate.Loaded {
		// 已加载过，直接从当天缓存取，不改变状态
		board, err := h.svc.Leaderboard.Get(c.Request.Context(), false)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state, "leaderboard": board})
		return
	}
	h.load(c, visitor, token, false)
}

// Refresh POST /api/ai-top-ideas/refresh
func (h *LeaderboardHandler) Refresh(c *gin.Context) {
	visitor := visitorID(c)
	var token string
	h.svc.Panels.Update(visitor, func(l *viewstate.Leaderboard) {
		token = l.Refresh()
	})
	h.load(c, visitor, token, true)
}

// Collapse POST /api/ai-top-ideas/collapse
func (h *LeaderboardHandler) Collapse(c *gin.Context) {
	state := h.svc.Panels.Update(visitorID(c), func(l *viewstate.Leaderboard) {
		l.Collapse()
	})
	c.JSON(http.StatusOK, gin.H{"state": state})
}
