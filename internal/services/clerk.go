package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotConfigured = errors.New("missing clerk secret key")
)

// Profile 身份服务返回的公开资料
type Profile struct {
	ID        string `json:"-"`
	ImageURL  string `json:"imageUrl"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// Email 主邮箱，只在服务端使用
	Email string `json:"-"`
}

// DisplayName 姓名拼接，都为空时返回空串
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ProfileLookup 按用户 ID 查询公开资料
type ProfileLookup interface {
	Profile(ctx context.Context, userID string) (*Profile, error)
}

type clerkUser struct {
	ID             string `json:"id"`
	ImageURL       string `json:"image_url"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PrimaryEmailID string `json:"primary_email_address_id"`
	EmailAddresses []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

func (u clerkUser) primaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

type ClerkConfig struct {
	SecretKey string
	APIURL    string
	CacheTTL  time.Duration
	Timeout   time.Duration
}

type ClerkClient struct {
	config     ClerkConfig
	httpClient *http.Client
	cache      *cache.Cache
}

func NewClerkClient(cfg ClerkConfig) *ClerkClient {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.clerk.com/v1"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &ClerkClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
	}
}

// Profile 查询用户资料，成功结果按 TTL 缓存
func (c *ClerkClient) Profile(ctx context.Context, userID string) (*Profile, error) {
	if c.config.SecretKey == "" {
		return nil, ErrProfileNotConfigured
	}
	if userID == "" {
		return nil, ErrUserNotFound
	}

	cacheKey := "profile:" + userID
	if cached, found := c.cache.Get(cacheKey); found {
		if p, ok := cached.(*Profile); ok {
			return p, nil
		}
	}

	endpoint := strings.TrimSuffix(c.config.APIURL, "/") + "/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求身份服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrUserNotFound
	}

	var u clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("解析用户资料失败: %w", err)
	}

	p := &Profile{ID: userID, ImageURL: u.ImageURL, FirstName: u.FirstName, LastName: u.LastName, Email: u.primaryEmail()}
	c.cache.Set(cacheKey, p, cache.DefaultExpiration)
	return p, nil
}
