package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimitMiddleware creates a per-IP token-bucket rate limiter.
func NewRateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	result := &RateLimitMiddleware{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	return result.Handler()
}

// Handler returns the gin middleware that performs rate limiting.
func (i *RateLimitMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		i.mu.Lock()
		limiter, exists := i.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(i.rps, i.burst)
			i.limiters[ip] = limiter
		}
		i.mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
