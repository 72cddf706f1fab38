package cache

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// IndexKey is the fixed key the rendered index page is cached under. The
// cache is deliberately not per-user or per-query-string.
const IndexKey = "index_page"

// entry 包装缓存数据和过期时间
type entry struct {
	Body      []byte
	ExpiresAt time.Time
}

// PageCache is a bounded store of rendered page bytes with per-entry TTL.
// The clock is injected so tests can advance time instead of sleeping.
type PageCache struct {
	lruCache *lru.Cache[string, entry]
	now      func() time.Time
}

var (
	pagesOnce sync.Once
	pages     *PageCache
)

// Pages 获取单例缓存实例
func Pages() *PageCache {
	pagesOnce.Do(func() {
		pages = New(500, time.Now)
	})
	return pages
}

func New(size int, now func() time.Time) *PageCache {
	l, err := lru.New[string, entry](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	if now == nil {
		now = time.Now
	}
	return &PageCache{lruCache: l, now: now}
}

// SetClock swaps the time source; tests use it to advance time
// deterministically instead of sleeping.
func (c *PageCache) SetClock(now func() time.Time) {
	c.now = now
}

// Set stores body under key until the TTL elapses. The slice is copied so
// later writes by the caller cannot change what readers get back.
func (c *PageCache) Set(key string, body []byte, ttl time.Duration) {
	buf := make([]byte, len(body))
	copy(buf, body)
	c.lruCache.Add(key, entry{
		Body:      buf,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get returns the cached bytes, or false when absent or expired.
func (c *PageCache) Get(key string) ([]byte, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	// 检查过期
	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil, false
	}

	return val.Body, true
}

// Delete 删除指定缓存
func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Clear drops every entry; the next request re-renders and re-caches.
func (c *PageCache) Clear() {
	c.lruCache.Purge()
}
