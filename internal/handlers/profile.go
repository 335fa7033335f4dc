package handlers

import (
	"net/http"
	"strings"

	"vantage/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *Services
}

func NewProfileHandler(svc *Services) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type profileRequest struct {
	About     string `json:"about"`
	EmailPref bool   `json:"email_pref"`
}

// Identity GET /api/user-profile?userId=
func (h *ProfileHandler) Identity(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		JSONError(c, http.StatusBadRequest, "Missing userId")
		return
	}

	profile, err := h.svc.Identity.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.svc.Profiles.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid body")
		return
	}
	profile, err := h.svc.Profiles.Upsert(c.Request.Context(), userID, req.About, req.EmailPref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
