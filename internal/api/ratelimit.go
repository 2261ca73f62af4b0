package api

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimit throttles state changing requests with a shared token bucket.
// Safe methods always pass.
func RateLimit(limiter *rate.Limiter, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow() {
				log.WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("rate limit exceeded")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
