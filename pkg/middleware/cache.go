package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"tably/pkg/logger"
)

type cacheWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	buf        bytes.Buffer
}

func (cw *cacheWriter) WriteHeader(statusCode int) {
	if !cw.written {
		cw.statusCode = statusCode
		cw.written = true
		cw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (cw *cacheWriter) Write(b []byte) (int, error) {
	if !cw.written {
		cw.WriteHeader(http.StatusOK)
	}
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCache serves GET responses from Redis for the configured TTL.
// Only 200 responses are cached. Cache failures fall through to the handler;
// a cold or unreachable Redis never breaks a request.
func ResponseCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)
			if cached, err := rdb.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(cached)
				return
			}

			cw := &cacheWriter{ResponseWriter: w}
			next.ServeHTTP(cw, r)

			if cw.statusCode != http.StatusOK {
				return
			}

			if err := rdb.Set(r.Context(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
				log.Warn("Failed to store cached response",
					"request_id", requestIDFrom(r),
					"key", key,
					"error", err,
				)
			}
		})
	}
}

func cacheKey(r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("tably:cache:%x", sum)
}
