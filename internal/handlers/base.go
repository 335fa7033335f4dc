package handlers

import (
	"errors"
	"net/http"

	"vantage/internal/config"
	"vantage/internal/middleware"
	"vantage/internal/services"
	"vantage/internal/utils"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if uid := middleware.CurrentUserID(c); uid != "" {
		obj["CurrentUserID"] = uid
	}
	obj["CurrentPath"] = c.Request.URL.Path
	obj["SiteURL"] = config.Get().SiteURL

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// JSONError 统一的 JSON 错误格式
func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// statusFor 把服务层错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusNoContent
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoIdeas):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrInvalidParent),
		errors.Is(err, services.ErrTooLong):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError 未登录的写操作静默返回 204，其余输出 {"error": ...}
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusNoContent {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	var chainErr *services.ChainError
	if code == http.StatusInternalServerError && !errors.As(err, &chainErr) {
		_ = c.Error(err)
		JSONError(c, code, "Internal server error")
		return
	}
	JSONError(c, code, err.Error())
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		JSONError(c, http.StatusBadRequest, "Invalid id")
	}
	return id, ok
}
