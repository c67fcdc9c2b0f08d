package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/utils"
)

// AnalyticsHandler serves visit tracking and the rollup stats endpoint.
type AnalyticsHandler struct {
	Visits repository.VisitStore  // write side, upsert-increment
	Stats  repository.StatsReader // read side, rollup queries
	Prod   bool
}

// NewAnalyticsHandler constructs an AnalyticsHandler. Both stores must
// be non-nil.
func NewAnalyticsHandler(visits repository.VisitStore, stats repository.StatsReader, prod bool) *AnalyticsHandler {
	if visits == nil || stats == nil {
		panic("nil store passed to NewAnalyticsHandler")
	}
	return &AnalyticsHandler{Visits: visits, Stats: stats, Prod: prod}
}

// Track handles POST /api/analytics/track. The visitor key is derived
// server-side from the request (country header or hashed ip+ua); the
// client only names the page.
func (h *AnalyticsHandler) Track(c echo.Context) error {
	var body struct {
		PageType string  `json:"pageType"`
		PageID   *string `json:"pageId"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.PageTypes[body.PageType] {
		return respondError(c, http.StatusBadRequest, "unknown page type")
	}
	if body.PageID != nil && len(*body.PageID) > 64 {
		return respondError(c, http.StatusBadRequest, "invalid page id")
	}
	visitor := utils.VisitorKey(c.Request())
	if err := h.Visits.Record(c.Request().Context(), body.PageType, body.PageID, visitor); err != nil {
		return respondInternal(c, "failed to record visit", err, !h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "visit recorded"})
}

// GetStats handles GET /api/analytics/stats. An unrecognized timeframe
// silently becomes 30d; the normalized value is echoed back so clients
// can tell which window they actually got.
func (h *AnalyticsHandler) GetStats(c echo.Context) error {
	pageType := c.QueryParam("pageType")
	if pageType != "" && !model.PageTypes[pageType] {
		return respondError(c, http.StatusBadRequest, "unknown page type")
	}
	timeframe := repository.NormalizeTimeframe(c.QueryParam("timeframe"))
	stats, err := h.Stats.Stats(c.Request().Context(), pageType, timeframe)
	if err != nil {
		return respondInternal(c, "failed to load analytics", err, !h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"timeframe": timeframe,
		"data":      stats,
	})
}
