package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/config"
)

func cacheConfig(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  strategy,
		Prefix:       "sketchfolio",
		MaxBodyBytes: 1024,
	}
}

func cacheContext(target, route string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(route)
	return c
}

func TestEntryKeyGroupsVariantsByRoute(t *testing.T) {
	rc := NewResponseCache(cacheConfig("route_query"), nil)

	scope := rc.routeScope("/api/config")
	plain := rc.entryKey(cacheContext("/api/config", "/api/config"))
	keyed := rc.entryKey(cacheContext("/api/config?key=message_disable", "/api/config"))

	if plain == keyed {
		t.Fatalf("different queries must produce different entry keys")
	}
	for _, k := range []string{plain, keyed} {
		if !strings.HasPrefix(k, scope+":") {
			t.Fatalf("entry key %q does not share route scope %q", k, scope)
		}
	}

	other := rc.entryKey(cacheContext("/api/comments/counts", "/api/comments/counts"))
	if strings.HasPrefix(other, scope+":") {
		t.Fatalf("a different route must not share the scope of /api/config")
	}
}

func TestEntryKeyMethodStrategiesStayRouteScoped(t *testing.T) {
	// invalidation matches on the route scope, so no strategy may move
	// the method or query into it
	for _, strategy := range []string{"route", "method_route", "method_route_query", "route_query"} {
		rc := NewResponseCache(cacheConfig(strategy), nil)
		scope := rc.routeScope("/api/analytics/stats")
		k := rc.entryKey(cacheContext("/api/analytics/stats?timeframe=7d", "/api/analytics/stats"))
		if !strings.HasPrefix(k, scope+":") {
			t.Fatalf("strategy %q: key %q escapes route scope %q", strategy, k, scope)
		}
	}
}

func TestInvalidateWithoutRedisIsNoop(t *testing.T) {
	rc := NewResponseCache(cacheConfig("route_query"), nil)
	if err := rc.Invalidate(context.Background(), "/api/config"); err != nil {
		t.Fatalf("invalidate without redis should be a no-op, got %v", err)
	}
}

func TestMiddlewarePassthroughWithoutRedis(t *testing.T) {
	rc := NewResponseCache(cacheConfig("route_query"), nil)
	mw := rc.Middleware()

	c := cacheContext("/api/config", "/api/config")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("passthrough returned error: %v", err)
	}
	if !called {
		t.Fatalf("handler was not invoked")
	}
	if got := c.Response().Header().Get("X-Cache"); got != "" {
		t.Fatalf("passthrough must not set X-Cache, got %q", got)
	}
}

func TestRecordingWriterSkipsOversizedBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &recordingWriter{ResponseWriter: rec, status: http.StatusOK, cap: 8}

	if _, err := w.Write([]byte("12345")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if w.overflow || string(w.body) != "12345" {
		t.Fatalf("small body should be retained, got overflow=%v body=%q", w.overflow, w.body)
	}

	if _, err := w.Write([]byte("67890")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !w.overflow {
		t.Fatalf("exceeding the cap must mark the response uncacheable")
	}
	if w.body != nil {
		t.Fatalf("overflowed recorder must drop the partial body")
	}
	// the client still receives the full payload
	if got := rec.Body.String(); got != "1234567890" {
		t.Fatalf("client body = %q, want full payload", got)
	}
}
