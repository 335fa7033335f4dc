package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"vantage/internal/models"
	"vantage/internal/utils"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Leaderboard 当天的 AI 排行榜
type Leaderboard struct {
	Day         string        `json:"day"`
	Raw         string        `json:"raw"`
	Entries     []RankedEntry `json:"entries"`
	Model       string        `json:"model"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// LeaderboardService 每个 UTC 自然日最多生成一次排行榜
type LeaderboardService struct {
	db      *gorm.DB
	gateway Gateway
	models  []string
	cache   *utils.GlobalCache
	flights singleflight.Group
	// 每次强制刷新加一，旧一轮的生成结果不再写缓存
	epoch atomic.Uint64
	now   func() time.Time
}

func NewLeaderboardService(db *gorm.DB, gateway Gateway, models []string, cache *utils.GlobalCache) *LeaderboardService {
	return &LeaderboardService{
		db:      db,
		gateway: gateway,
		models:  append([]string(nil), models...),
		cache:   cache,
		now:     time.Now,
	}
}

// WithClock 替换时钟，缓存的日期键和过期时间都以它为准
func (s *LeaderboardService) WithClock(now func() time.Time) *LeaderboardService {
	s.now = now
	return s
}

func leaderboardKey(day string) string {
	return "leaderboard:" + day
}

// nextUTCMidnight 下一个 UTC 零点
func nextUTCMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// Get 返回当天排行榜；refresh 为 true 时先清掉当天缓存并开启新一轮生成
func (s *LeaderboardService) Get(ctx context.Context, refresh bool) (*Leaderboard, error) {
	now := s.now()
	day := now.UTC().Format("2006-01-02")
	key := leaderboardKey(day)

	if refresh {
		s.epoch.Add(1)
		s.cache.Delete(key)
	} else if cached, ok := s.cache.Get(key).(*Leaderboard); ok {
		return cached, nil
	}

	epoch := s.epoch.Load()
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.flights.Do(fmt.Sprintf("%s#%d", key, epoch), func() (interface{}, error) {
		board, err := s.build(shared, day, now)
		if err != nil {
			return nil, err
		}
		if s.epoch.Load() == epoch {
			s.cache.SetUntil(key, board, nextUTCMidnight(now))
		}
		return board, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Leaderboard), nil
}

func (s *LeaderboardService) build(ctx context.Context, day string, now time.Time) (*Leaderboard, error) {
	logger := serviceLogger("leaderboard")

	var ideas []models.Idea
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("加载想法失败: %w", err)
	}
	if len(ideas) == 0 {
		return nil, ErrNoIdeas
	}

	prompt := BuildRankingPrompt(ideas)
	result, err := RunFallbackChain(ctx, s.models, func(ctx context.Context, model string) (string, error) {
		return s.gateway.Complete(ctx, model, prompt)
	})
	if err != nil {
		logger.Error("ranking failed", "day", day, "ideas", len(ideas), "error", err)
		return nil, err
	}
	winner, _ := result.Winner()

	entries := LinkEntries(ParseRankedList(winner.Content), ideas)
	logger.Info("ranking generated", "day", day, "model", winner.Model, "entries", len(entries))

	return &Leaderboard{
		Day:         day,
		Raw:         winner.Content,
		Entries:     entries,
		Model:       winner.Model,
		GeneratedAt: now.UTC(),
	}, nil
}
