package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			w.Header().Set(constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock)
			w.Header().Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			w.Header().Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter tracks request counts per client IP inside a sliding window.
// It is used on the credential endpoints, where unthrottled guessing of
// passwords or temporary credentials would undermine their entropy.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientWindow
	limit     int
	window    time.Duration
	lastSweep time.Time
}

type clientWindow struct {
	count      int
	windowFrom time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*clientWindow),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow records one request from the client and reports whether it fits
// inside the current window.
func (rl *RateLimiter) Allow(clientIP string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Drop stale windows opportunistically instead of running a sweeper.
	if now.Sub(rl.lastSweep) > rl.window {
		for ip, cw := range rl.clients {
			if now.Sub(cw.windowFrom) > rl.window {
				delete(rl.clients, ip)
			}
		}
		rl.lastSweep = now
	}

	cw, ok := rl.clients[clientIP]
	if !ok || now.Sub(cw.windowFrom) > rl.window {
		rl.clients[clientIP] = &clientWindow{count: 1, windowFrom: now}
		return true
	}

	cw.count++
	return cw.count <= rl.limit
}

// RateLimit is middleware that limits the rate of requests from clients.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if !limiter.Allow(clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", "60")
				utils.Error(w, http.StatusTooManyRequests, "too_many_requests", "Rate limit exceeded. Please try again later.", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP address from the request,
// taking into account common proxy headers.
func getClientIP(r *http.Request) string {
	xForwardedFor := r.Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		// Use the leftmost IP in the list (client IP)
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
