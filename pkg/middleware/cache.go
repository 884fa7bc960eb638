package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"cinema-ticket/pkg/cache"
	"cinema-ticket/pkg/metrics"

	"go.uber.org/zap"
)

const maxCachedBody = 1 << 20

// captureWriter copies the body while forwarding it to the client
type captureWriter struct {
	*responseWriter
	buf bytes.Buffer
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.buf.Len()+len(b) <= maxCachedBody {
		cw.buf.Write(b)
	}
	return cw.responseWriter.Write(b)
}

// ResponseCache serves GET requests of a resource group from store and
// drops the group's entries after any successful mutation in it, along
// with the entries of every dependent group whose responses embed this
// group's data. Only mount it on routes whose responses depend on
// neither the caller nor the current time. group must be unique per
// route group, e.g. "movies". A nil store disables caching.
func ResponseCache(store cache.Store, group string, ttl time.Duration, logger *zap.Logger, dependents ...string) func(http.Handler) http.Handler {
	if store == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	stale := append([]string{group}, dependents...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				rw := wrapResponseWriter(w)
				next.ServeHTTP(rw, r)

				if rw.statusCode < 300 {
					ctx := context.WithoutCancel(r.Context())
					for _, g := range stale {
						if err := store.DeletePrefix(ctx, g+":"); err != nil {
							logger.Warn("Cache invalidation failed", zap.Error(err), zap.String("group", g))
						}
					}
				}
				return
			}

			key := group + ":" + r.URL.RequestURI()
			if body, ok, err := store.Get(r.Context(), key); err == nil && ok {
				metrics.ResponseCacheHits.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			} else if err != nil {
				logger.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
			}

			metrics.ResponseCacheMisses.Inc()
			w.Header().Set("X-Cache", "MISS")

			cw := &captureWriter{responseWriter: wrapResponseWriter(w)}
			next.ServeHTTP(cw, r)

			if cw.statusCode == http.StatusOK && cw.buf.Len() > 0 && cw.buf.Len() < maxCachedBody {
				if err := store.Set(r.Context(), key, cw.buf.Bytes(), ttl); err != nil {
					logger.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
				}
			}
		})
	}
}
