package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dedupStore 最近看過的請求指紋。客戶端重送同一份冰箱快照時，
// 短窗口內直接擋掉而不是重算。
type dedupStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

var (
	store       = &dedupStore{seen: make(map[string]time.Time)}
	cleanupOnce sync.Once
)

func (s *dedupStore) check(fingerprint string, window time.Duration) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.seen[fingerprint]; ok && now.Sub(last) <= window {
		return false
	}
	s.seen[fingerprint] = now
	return true
}

func (s *dedupStore) sweep(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.seen {
		if t.Before(cutoff) {
			delete(s.seen, k)
		}
	}
}

func dedupWindow(cfg *config.Config) time.Duration {
	if cfg != nil && cfg.DedupWindow > 0 {
		return cfg.DedupWindow
	}
	return time.Second
}

// Deduplication 重複請求抑制中間件。POST 請求以方法、路徑與
// 請求體雜湊當指紋，窗口內重複者回 429。
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	window := dedupWindow(cfg)
	cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				store.sweep(10 * window)
			}
		}()
	})

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("無法讀取請求體", zap.Error(err))
				c.Next()
				return
			}
			// handler 還要再解一次 JSON，讀完得放回去
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

			sum := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(sum[:])
		}

		if !store.check(fingerprint, window) {
			common.LogWarn("重複請求被抑制",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Duplicate request",
				"code":  "DUPLICATE_REQUEST",
			})
			return
		}

		c.Next()
	}
}
