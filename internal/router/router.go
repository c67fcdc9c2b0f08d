package router // package router defines how HTTP routes are registered for the API

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mirayaksel/sketchfolio/internal/config"
	"github.com/mirayaksel/sketchfolio/internal/handler"
	"github.com/mirayaksel/sketchfolio/internal/middleware"
)

// Handlers bundles every handler the API exposes so registration stays
// in one place. All fields must be non-nil except Admin, which is
// skipped when the admin surface is not configured.
type Handlers struct {
	Reactions *handler.ReactionHandler
	Analytics *handler.AnalyticsHandler
	Comments  *handler.CommentHandler
	Config    *handler.ConfigHandler
	Contact   *handler.ContactHandler
	Admin     *handler.AdminHandler
}

// RegisterRoutes wires the full API surface onto the Echo instance.
// Mutating endpoints sit behind the Redis token-bucket rate limiter;
// the hot read endpoints sit behind the response cache. Both degrade
// to pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, h Handlers, rdb *redis.Client, jwtSecret string) {
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	respCache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	cache := respCache.Middleware()

	api := e.Group("/api")

	// reaction endpoints; reads are cheap single-subject lookups and
	// stay uncached so a toggle is visible on the next fetch
	api.GET("/sketches/:id/stats", h.Reactions.GetStats)
	api.POST("/sketches/:id/like", h.Reactions.Toggle, limiter)
	api.GET("/sketches/:id/reactions", h.Reactions.GetReactions)
	api.POST("/sketches/:id/react", h.Reactions.React, limiter)

	// analytics
	api.POST("/analytics/track", h.Analytics.Track, limiter)
	api.GET("/analytics/stats", h.Analytics.GetStats, cache)

	// comments; the counts route must be registered before the
	// parameterized sketch route so "counts" is not read as a sketch id
	api.GET("/comments/counts", h.Comments.Counts, cache)
	api.GET("/comments/:sketchId", h.Comments.List)
	api.POST("/comments/:sketchId", h.Comments.Create, limiter)

	// site feature flags
	api.GET("/config", h.Config.Get, cache)

	// contact form
	api.POST("/contact", h.Contact.Create, limiter)

	// admin surface; every route except login requires a valid token
	if h.Admin != nil {
		// a flag write must not be served stale from the response
		// cache, so the handler drops the cached /api/config entry
		h.Admin.InvalidateConfig = func(ctx context.Context) error {
			return respCache.Invalidate(ctx, "/api/config")
		}
		api.POST("/admin/login", h.Admin.Login, limiter)
		admin := api.Group("/admin", middleware.AdminAuth(jwtSecret))
		admin.PUT("/config", h.Admin.SetConfig)
		admin.DELETE("/comments/:id", h.Admin.DeleteComment)
		admin.GET("/contact", h.Admin.ListContacts)
	}
}
