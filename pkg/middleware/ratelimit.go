package middleware

import (
	"net/http"
	"time"

	"cinema-ticket/pkg/metrics"
	"cinema-ticket/pkg/utils"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits each client IP to requests per window. A
// non-positive limit disables it.
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimitHits.WithLabelValues(r.URL.Path).Inc()
			utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
		}),
	)
}
