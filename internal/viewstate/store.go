package viewstate

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store 按访客 ID 保存排行榜面板状态。
// 读改写都在同一把锁内完成，令牌比较总是针对最新状态。
type Store struct {
	mu     sync.Mutex
	panels *cache.Cache
}

// NewStore ttl 内没有访问的状态会被清掉
func NewStore(ttl time.Duration) *Store {
	return &Store{panels: cache.New(ttl, ttl/2)}
}

func (s *Store) load(visitor string) *Leaderboard {
	if v, ok := s.panels.Get(visitor); ok {
		if l, ok := v.(*Leaderboard); ok {
			return l
		}
	}
	return NewLeaderboard()
}

// Get 返回状态副本，未知访客为隐藏
func (s *Store) Get(visitor string) Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.load(visitor)
}

// Update 在锁内修改状态并返回修改后的副本
func (s *Store) Update(visitor string, fn func(l *Leaderboard)) Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.load(visitor)
	fn(l)
	s.panels.Set(visitor, l, cache.DefaultExpiration)
	return *l
}
