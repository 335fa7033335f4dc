package handlers

import (
	"path/filepath"
	"time"

	"vantage/internal/config"
	"vantage/internal/services"
	"vantage/internal/utils"
	"vantage/internal/viewstate"

	"gorm.io/gorm"
)

// Services 处理器依赖的全部服务
type Services struct {
	Ideas       *services.IdeaService
	Comments    *services.CommentService
	Toggles     *services.Reconciler
	Generator   *services.Generator
	Leaderboard *services.LeaderboardService
	Profiles    *services.ProfileService
	Identity    services.ProfileLookup
	Panels      *viewstate.Store
	SiteURL     string
}

// panelTTL 与会话 cookie 的有效期一致
const panelTTL = 7 * 24 * time.Hour

// NewServices 按配置组装服务
func NewServices(conn *gorm.DB, cfg *config.Config) *Services {
	gateway := services.NewOpenRouterClient(services.OpenRouterConfig{
		APIKey:   cfg.OpenRouter.APIKey,
		BaseURL:  cfg.OpenRouter.BaseURL,
		SiteURL:  cfg.OpenRouter.SiteURL,
		SiteName: cfg.OpenRouter.SiteName,
	})
	identity := services.NewClerkClient(services.ClerkConfig{
		SecretKey: cfg.Clerk.SecretKey,
		APIURL:    cfg.Clerk.APIURL,
		CacheTTL:  10 * time.Minute,
	})
	mail := services.NewMailService(services.MailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,

		TemplatesDir: filepath.Join(cfg.TemplatesDir, "email"),
	})

	comments := services.NewCommentService(conn, identity).
		WithNotifier(services.NewMailReplyNotifier(conn, mail, identity, cfg.SiteURL))

	return &Services{
		Ideas:       services.NewIdeaService(conn),
		Comments:    comments,
		Toggles:     services.NewReconciler(conn),
		Generator:   services.NewGenerator(conn, gateway, cfg.OpenRouter.Models),
		Leaderboard: services.NewLeaderboardService(conn, gateway, cfg.OpenRouter.Models, utils.GetCache()),
		Profiles:    services.NewProfileService(conn),
		Identity:    identity,
		Panels:      viewstate.NewStore(panelTTL),
		SiteURL:     cfg.SiteURL,
	}
}
