package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Idle clients are evicted
// after a few minutes so the map does not grow without bound.
func RateLimit(perSec float64) gin.HandlerFunc {
	if perSec <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var mu sync.Mutex
	clients := map[string]*clientLimiter{}
	burst := int(perSec)
	if burst < 1 {
		burst = 1
	}

	cleanup := func(now time.Time) {
		for ip, cl := range clients {
			if now.Sub(cl.lastSeen) > 3*time.Minute {
				delete(clients, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
			clients[ip] = cl
			if len(clients)%256 == 0 {
				cleanup(now)
			}
		}
		cl.lastSeen = now
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
