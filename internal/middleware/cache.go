package middleware

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mirayaksel/sketchfolio/internal/config"
)

// ResponseCache caches whole responses (status, headers, body) for the
// hot read endpoints in Redis. Keys are grouped by route so a write
// that changes what a route serves can drop every cached variant at
// once; the admin flag update uses this to keep GET /api/config fresh.
type ResponseCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
	ttl time.Duration
}

func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) *ResponseCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ResponseCache{cfg: cfg, rdb: rdb, ttl: ttl}
}

func (rc *ResponseCache) active() bool { return rc.cfg.Enabled && rc.rdb != nil }

// cachedResponse is the stored form of one response. Body round-trips
// through base64 via encoding/json.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// routeScope returns the key segment shared by every variant of a
// route. Invalidate matches on it.
func (rc *ResponseCache) routeScope(route string) string {
	sum := sha1.Sum([]byte(route))
	return fmt.Sprintf("%s:%x", rc.cfg.Prefix, sum[:8])
}

// entryKey returns the full key for one request variant. Method and
// query string go in the variant segment depending on the configured
// strategy; the route segment never carries them, so route-level
// invalidation always reaches every variant.
func (rc *ResponseCache) entryKey(c echo.Context) string {
	r := c.Request()
	var variant string
	switch strings.ToLower(rc.cfg.KeyStrategy) {
	case "route":
		variant = "-"
	case "method_route":
		variant = r.Method
	case "method_route_query":
		variant = r.Method + "?" + r.URL.RawQuery
	default: // "route_query"
		variant = "?" + r.URL.RawQuery
	}
	sum := sha1.Sum([]byte(variant))
	return fmt.Sprintf("%s:%x", rc.routeScope(c.Path()), sum[:8])
}

// Invalidate drops every cached variant of the given route. It is a
// no-op when caching is disabled, so callers may invoke it
// unconditionally after a write.
func (rc *ResponseCache) Invalidate(ctx context.Context, route string) error {
	if !rc.active() {
		return nil
	}
	match := rc.routeScope(route) + ":*"
	var cursor uint64
	for {
		keys, next, err := rc.rdb.Scan(ctx, cursor, match, 64).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rc.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// recordingWriter tees the response body up to a size cap. Oversized
// responses still reach the client but are marked uncacheable rather
// than stored truncated.
type recordingWriter struct {
	http.ResponseWriter
	status   int
	body     []byte
	cap      int
	overflow bool
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.cap > 0 && len(w.body)+len(b) > w.cap {
			w.overflow = true
			w.body = nil
		} else {
			w.body = append(w.body, b...)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Middleware serves cached 200 responses and stores fresh ones. Only
// the configured methods participate; everything else passes through.
func (rc *ResponseCache) Middleware() echo.MiddlewareFunc {
	if !rc.active() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rc.cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := rc.entryKey(c)

			if raw, err := rc.rdb.Get(ctx, key).Bytes(); err == nil {
				var hit cachedResponse
				if json.Unmarshal(raw, &hit) == nil && hit.Status != 0 {
					for k, vals := range hit.Header {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(hit.Status)
					if len(hit.Body) > 0 {
						_, _ = c.Response().Write(hit.Body)
					}
					return nil
				}
			}

			rec := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, cap: rc.cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK || rec.overflow {
				return nil
			}

			hdr := make(http.Header, len(c.Response().Header()))
			for k, vals := range c.Response().Header() {
				hdr[k] = append([]string(nil), vals...)
			}
			if raw, err := json.Marshal(cachedResponse{Status: rec.status, Header: hdr, Body: rec.body}); err == nil {
				_ = rc.rdb.SetEx(context.Background(), key, raw, rc.ttl).Err()
			}
			return nil
		}
	}
}
