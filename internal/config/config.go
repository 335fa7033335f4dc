package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// DefaultModels 生成请求依次尝试的模型
var DefaultModels = []string{
	"google/gemma-3n-e4b-it:free",
	"meta-llama/llama-4-maverick:free",
	"deepseek/deepseek-r1-0528:free",
}

type Config struct {
	Port          string
	SessionSecret string
	TemplatesDir  string
	Database      struct {
		URL string
	}
	OpenRouter struct {
		APIKey   string
		BaseURL  string
		SiteURL  string
		SiteName string
		Models   []string
	}
	Clerk struct {
		SecretKey string
		APIURL    string
		JWTKey    string // PEM 公钥，用于离线校验会话令牌
	}
	// SMTP 未配置完整时不发邮件
	SMTP struct {
		Host     string
		Port     string
		Username string
		Password string
		From     string
	}
	SiteURL string
}

var (
	current *Config
	mu      sync.RWMutex
)

// Load 读取配置：可选的 config.yaml + 环境变量（环境变量优先）
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Port = v.GetString("port")
	cfg.SessionSecret = v.GetString("session_secret")
	cfg.TemplatesDir = v.GetString("templates_dir")

	cfg.Database.URL = v.GetString("database_url")

	cfg.OpenRouter.APIKey = v.GetString("openrouter_api_key")
	cfg.OpenRouter.BaseURL = v.GetString("openrouter_base_url")
	cfg.OpenRouter.SiteURL = v.GetString("openrouter_site_url")
	cfg.OpenRouter.SiteName = v.GetString("openrouter_site_name")
	cfg.OpenRouter.Models = parseModels(v.GetString("llm_models"))

	cfg.Clerk.SecretKey = v.GetString("clerk_secret_key")
	cfg.Clerk.APIURL = v.GetString("clerk_api_url")
	cfg.Clerk.JWTKey = v.GetString("clerk_jwt_key")

	cfg.SMTP.Host = v.GetString("smtp_host")
	cfg.SMTP.Port = v.GetString("smtp_port")
	cfg.SMTP.Username = v.GetString("smtp_user")
	cfg.SMTP.Password = v.GetString("smtp_pass")
	cfg.SMTP.From = v.GetString("smtp_from")
	cfg.SiteURL = strings.TrimSuffix(v.GetString("site_url"), "/")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	Set(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("session_secret", "secret_key_change_me")
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("database_url", "host=localhost user=postgres password=postgres dbname=vantage port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("openrouter_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm_models", strings.Join(DefaultModels, ","))
	v.SetDefault("clerk_api_url", "https://api.clerk.com/v1")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("site_url", "http://localhost:8080")
}

// parseModels 解析逗号分隔的模型列表，保持顺序并去掉空项
func parseModels(raw string) []string {
	var out []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("port is required")
	}
	if len(cfg.OpenRouter.Models) == 0 {
		return fmt.Errorf("llm_models must list at least one model")
	}
	return nil
}

// Get 返回当前配置；未加载时返回默认值
func Get() *Config {
	mu.RLock()
	cfg := current
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	cfg = &Config{Port: "8080", TemplatesDir: "./web/templates"}
	cfg.OpenRouter.BaseURL = "https://openrouter.ai/api/v1"
	cfg.OpenRouter.Models = append([]string(nil), DefaultModels...)
	cfg.Clerk.APIURL = "https://api.clerk.com/v1"
	cfg.SiteURL = "http://localhost:8080"
	return cfg
}

// Set 替换当前配置（测试中也会用到）
func Set(cfg *Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}
