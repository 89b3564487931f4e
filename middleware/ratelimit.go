package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 每个 key 在 window 内的请求时间戳
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

func newSlidingWindow(max int, window time.Duration) *slidingWindow {
	return &slidingWindow{window: window, max: max, hits: make(map[string][]time.Time)}
}

// allow 记录一次请求，超过上限时返回 false 且不计数
func (s *slidingWindow) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := prune(s.hits[key], now.Add(-s.window))
	if len(ts) >= s.max {
		s.hits[key] = ts
		return false
	}
	s.hits[key] = append(ts, now)
	return true
}

// sweep 清理整个窗口已过期的 key
func (s *slidingWindow) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.window)
	for key, ts := range s.hits {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(s.hits, key)
		} else {
			s.hits[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// RateLimit 按客户端 IP 的滑动窗口限流，window 内超过 maxAttempts 次返回 429
// 用于管理员登录与扫码枪接口
func RateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newSlidingWindow(maxAttempts, window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many attempts, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
