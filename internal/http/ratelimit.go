package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client limiter. A client's window opens
// on its first request and resets once the window elapses.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow

	limit  int
	window time.Duration
}

type clientWindow struct {
	start    time.Time
	requests int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
}

func (rl *rateLimiter) allow(clientIP string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[clientIP]
	if !ok || now.Sub(cw.start) > rl.window {
		rl.clients[clientIP] = &clientWindow{start: now, requests: 1}
		if len(rl.clients) > 1024 {
			rl.sweepLocked(now)
		}
		return true
	}
	cw.requests++
	return cw.requests <= rl.limit
}

// sweepLocked drops expired windows. Caller holds the mutex.
func (rl *rateLimiter) sweepLocked(now time.Time) {
	for ip, cw := range rl.clients {
		if now.Sub(cw.start) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r), time.Now()) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
