package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache 本地 LRU 缓存，每项带过期时间
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]
	now      func() time.Time
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// GetCache 获取单例缓存实例
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		c, err := NewCache(500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = c
	})
	return cacheInstance
}

// NewCache 创建独立的缓存实例，测试里用它避免共享单例
func NewCache(size int) (*GlobalCache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &GlobalCache{lruCache: l, now: time.Now}, nil
}

// WithClock 替换时钟
func (c *GlobalCache) WithClock(now func() time.Time) *GlobalCache {
	c.now = now
	return c
}

// Set 设置缓存，TTL 为过期时间
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.SetUntil(key, data, c.now().Add(ttl))
}

// SetUntil 设置缓存，到 expiresAt 失效
func (c *GlobalCache) SetUntil(key string, data interface{}, expiresAt time.Time) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: expiresAt,
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if !c.now().Before(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}
