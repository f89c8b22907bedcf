package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vidask/vidask/internal/config"
	"github.com/vidask/vidask/internal/models"
	"github.com/vidask/vidask/internal/utils"
)

// cleanupInterval is how often idle client entries are swept. An entry
// idle for a full interval has a refilled bucket, so dropping it loses
// nothing.
const cleanupInterval = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	// Start cleanup goroutine
	go l.cleanup()

	return l
}

func (l *ipLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.sweep(cleanupInterval)
	}
}

// sweep drops entries not seen within maxIdle so one-shot clients do not
// accumulate for the process lifetime.
func (l *ipLimiter) sweep(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for ip, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

// RateLimitMiddleware bounds the request rate per client IP. Transcript
// scraping and inference are expensive; this keeps one client from
// monopolizing them.
func RateLimitMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	limiter := newIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			appErr := utils.NewRateLimitError()
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: appErr.Message})
			c.Abort()
			return
		}

		c.Next()
	}
}
