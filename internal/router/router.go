package router

import (
	"crypto/rsa"

	"vantage/internal/config"
	"vantage/internal/handlers"
	"vantage/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// New 创建带会话、模板和身份识别中间件的引擎
func New(cfg *config.Config, svc *handlers.Services, publicKey *rsa.PublicKey) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("vantage_session", store))

	r.HTMLRender = LoadTemplates(cfg.TemplatesDir)
	r.Use(middleware.LoadUser(publicKey))

	RegisterRoutes(r, svc)
	return r
}

func RegisterRoutes(r *gin.Engine, svc *handlers.Services) {
	// Handlers
	ideaHandler := handlers.NewIdeaHandler(svc)
	commentHandler := handlers.NewCommentHandler(svc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc)
	profileHandler := handlers.NewProfileHandler(svc)
	seoHandler := handlers.NewSEOHandler(svc)

	// 页面路由 (Pages)
	r.GET("/", ideaHandler.Index)           // 首页 - 想法列表
	r.GET("/ideas/:id", ideaHandler.Detail) // 想法详情页

	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)

	api := r.Group("/api")
	{
		api.GET("/ideas", ideaHandler.List)         // 想法列表
		api.GET("/ideas/:id", ideaHandler.Show)     // 想法详情 + 点赞/收藏状态
		api.POST("/llm-idea", ideaHandler.Generate) // 生成 AI 概念
		api.POST("/ideas/:id/like", ideaHandler.Like)
		api.POST("/ideas/:id/save", ideaHandler.Save)
		api.GET("/saved", middleware.AuthRequired(), ideaHandler.Saved) // 我的收藏

		api.GET("/ideas/:id/comments", commentHandler.Thread)
		api.POST("/ideas/:id/comments", commentHandler.Create)
		api.PATCH("/comments/:cid", commentHandler.Update)
		api.DELETE("/comments/:cid", commentHandler.Delete)
		api.POST("/comments/:cid/like", commentHandler.Like)

		api.GET("/ai-top-ideas", leaderboardHandler.Show)              // 今日排行榜
		api.POST("/ai-top-ideas/refresh", leaderboardHandler.Refresh)   // 强制重新生成
		api.POST("/ai-top-ideas/collapse", leaderboardHandler.Collapse) // 收起面板

		api.GET("/user-profile", profileHandler.Identity) // 身份服务公开资料
		api.GET("/profile", middleware.AuthRequired(), profileHandler.Get)
		api.PUT("/profile", profileHandler.Update)
	}
}
