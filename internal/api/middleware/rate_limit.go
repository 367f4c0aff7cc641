package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"fridge-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenBucket 全域令牌桶。推薦請求繳交整份食材與食譜快照，
// 單位成本高，以全域而非 per-IP 桶保護計算資源。
type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	refill   float64 // tokens per second
	last     time.Time
}

func newTokenBucket(requests int, window time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:   float64(requests),
		capacity: float64(requests),
		refill:   float64(requests) / window.Seconds(),
		last:     time.Now(),
	}
}

func (b *tokenBucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.refill
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimit 限流中間件：window 內最多 requests 個請求
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	bucket := newTokenBucket(requests, window)
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		if !bucket.take() {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"code":        "RATE_LIMITED",
				"retry_after": window.Seconds(),
			})
			return
		}

		c.Next()
	}
}
