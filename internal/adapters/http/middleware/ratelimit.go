package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type userLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	every   rate.Limit
	burst   int
}

func (u *userLimiter) get(key string, now time.Time) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.clients) >= maxTrackedClients {
		for k, cl := range u.clients {
			if now.Sub(cl.lastSeen) > time.Hour {
				delete(u.clients, k)
			}
		}
	}
	cl, ok := u.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(u.every, u.burst)}
		u.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// PerUserRateLimit allows perMinute requests per signed-in user (or client IP
// for anonymous callers), with a burst of the same size.
func PerUserRateLimit(perMinute int) echo.MiddlewareFunc {
	u := &userLimiter{
		clients: map[string]*clientLimiter{},
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if sess, ok := CurrentSession(c); ok {
				key = "user:" + sess.UserID
			}
			limiter := u.get(key, time.Now())
			if !limiter.Allow() {
				retry := time.Duration(float64(time.Second) / float64(u.every))
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
