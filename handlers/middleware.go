package handlers

import (
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"blog-server/shared"

	"go.uber.org/atomic"
)

var activeRequests atomic.Int64

// NumActiveRequests is polled during shutdown to drain in-flight requests.
func NumActiveRequests() int64 {
	return activeRequests.Load()
}

func DrainMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()
		next.ServeHTTP(w, r)
	})
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("Method: %s | URL: %s | Duration: %s | From: %s", r.Method, r.URL.Path, time.Since(start), r.RemoteAddr)
	})
}

const rateLimitMaxRequests = 60
const rateLimitWindow = time.Minute

type clientState struct {
	windowStart  time.Time
	requestCount int
	mu           sync.Mutex
}

var (
	rateClients   = make(map[string]*clientState)
	rateClientsMu sync.Mutex
	rateCleanup   sync.Once
)

// RateLimitMiddleware caps requests per client IP per window. Over the cap,
// clients get the uniform 429 envelope.
func RateLimitMiddleware(next http.Handler) http.Handler {
	rateCleanup.Do(func() {
		go cleanupClientStates()
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		rateClientsMu.Lock()
		state, exists := rateClients[ip]
		if !exists {
			state = &clientState{}
			rateClients[ip] = state
		}
		rateClientsMu.Unlock()

		state.mu.Lock()
		if time.Since(state.windowStart) > rateLimitWindow {
			state.requestCount = 0
			state.windowStart = time.Now()
		}
		state.requestCount++
		over := state.requestCount > rateLimitMaxRequests
		state.mu.Unlock()

		if over {
			writeApiError(w, &shared.ApiError{
				Kind: shared.ApiErrorKindRateLimit,
				Msg:  "rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// cleanupClientStates drops idle entries so the client map doesn't grow
// without bound.
func cleanupClientStates() {
	for range time.Tick(rateLimitWindow) {
		rateClientsMu.Lock()
		for ip, state := range rateClients {
			state.mu.Lock()
			if time.Since(state.windowStart) > 2*rateLimitWindow {
				delete(rateClients, ip)
			}
			state.mu.Unlock()
		}
		rateClientsMu.Unlock()
	}
}
