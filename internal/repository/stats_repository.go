package repository // read-only rollups over the visit records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// StatsReader rolls up visit records into the summary views served by
// the analytics stats endpoint.
type StatsReader interface {
	Stats(ctx context.Context, pageType, timeframe string) (*model.AnalyticsStats, error)
}

// Timeframes accepted by the stats endpoint. Anything else silently
// becomes the default via NormalizeTimeframe.
const (
	Timeframe7d      = "7d"
	Timeframe30d     = "30d"
	Timeframe90d     = "90d"
	TimeframeAll     = "all"
	TimeframeDefault = Timeframe30d
)

// NormalizeTimeframe maps a raw query value onto a supported timeframe,
// defaulting unknown values to 30d rather than rejecting them.
func NormalizeTimeframe(tf string) string {
	switch tf {
	case Timeframe7d, Timeframe30d, Timeframe90d, TimeframeAll:
		return tf
	default:
		return TimeframeDefault
	}
}

// timeframeClause returns the fixed WHERE fragment for a normalized
// timeframe. The fragments are statically enumerated; user input never
// reaches the query text.
func timeframeClause(tf string) string {
	switch tf {
	case Timeframe7d:
		return "created_at >= NOW() - INTERVAL 7 DAY"
	case Timeframe90d:
		return "created_at >= NOW() - INTERVAL 90 DAY"
	case TimeframeAll:
		return "1=1"
	default: // 30d
		return "created_at >= NOW() - INTERVAL 30 DAY"
	}
}

// StatsRepo is the MySQL-backed StatsReader.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo given a DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Stats runs the four rollup queries for the given optional page type
// and normalized timeframe. pageType == "" means no page-type filter.
func (r *StatsRepo) Stats(ctx context.Context, pageType, timeframe string) (*model.AnalyticsStats, error) {
	tf := timeframeClause(NormalizeTimeframe(timeframe))

	// optional page-type predicate; the value itself stays a bind parameter
	typeFilter := ""
	var typeArgs []interface{}
	if pageType != "" {
		typeFilter = " AND page_type = ?"
		typeArgs = []interface{}{pageType}
	}

	stats := &model.AnalyticsStats{
		Overall:        []model.OverallStat{},
		Detailed:       []model.DetailedStat{},
		TopSketches:    []model.DetailedStat{},
		RecentActivity: []model.RecentVisit{},
	}

	overallQ := fmt.Sprintf(
		`SELECT page_type, SUM(visit_count), COUNT(DISTINCT visitor_key)
		 FROM visit_records WHERE %s%s
		 GROUP BY page_type ORDER BY SUM(visit_count) DESC`, tf, typeFilter)
	rows, err := r.db.QueryContext(ctx, overallQ, typeArgs...)
	if err != nil {
		return nil, fmt.Errorf("overall rollup: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s model.OverallStat
		if err := rows.Scan(&s.PageType, &s.TotalVisits, &s.UniqueVisitors); err != nil {
			return nil, err
		}
		stats.Overall = append(stats.Overall, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	detailedQ := fmt.Sprintf(
		`SELECT page_type, page_id, SUM(visit_count), COUNT(DISTINCT visitor_key)
		 FROM visit_records WHERE %s%s
		 GROUP BY page_type, page_id ORDER BY SUM(visit_count) DESC LIMIT 100`, tf, typeFilter)
	detailed, err := r.queryDetailed(ctx, detailedQ, typeArgs...)
	if err != nil {
		return nil, fmt.Errorf("detailed rollup: %w", err)
	}
	stats.Detailed = detailed

	topQ := fmt.Sprintf(
		`SELECT page_type, page_id, SUM(visit_count), COUNT(DISTINCT visitor_key)
		 FROM visit_records WHERE %s AND page_type = 'sketch'
		 GROUP BY page_type, page_id ORDER BY SUM(visit_count) DESC LIMIT 20`, tf)
	top, err := r.queryDetailed(ctx, topQ)
	if err != nil {
		return nil, fmt.Errorf("top sketches rollup: %w", err)
	}
	stats.TopSketches = top

	recentQ := fmt.Sprintf(
		`SELECT page_type, page_id, visit_count, updated_at
		 FROM visit_records
		 WHERE updated_at >= NOW() - INTERVAL 1 DAY%s
		 ORDER BY updated_at DESC LIMIT 50`, typeFilter)
	recent, err := r.db.QueryContext(ctx, recentQ, typeArgs...)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer recent.Close()
	for recent.Next() {
		var v model.RecentVisit
		var pageID string
		if err := recent.Scan(&v.PageType, &pageID, &v.VisitCount, &v.UpdatedAt); err != nil {
			return nil, err
		}
		if pageID != "" {
			v.PageID = &pageID
		}
		stats.RecentActivity = append(stats.RecentActivity, v)
	}
	return stats, recent.Err()
}

// queryDetailed runs one of the grouped-by-page queries and maps the
// empty page id back to NULL for pageless page types.
func (r *StatsRepo) queryDetailed(ctx context.Context, query string, args ...interface{}) ([]model.DetailedStat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DetailedStat{}
	for rows.Next() {
		var s model.DetailedStat
		var pageID string
		if err := rows.Scan(&s.PageType, &pageID, &s.TotalVisits, &s.UniqueVisitors); err != nil {
			return nil, err
		}
		if pageID != "" {
			id := pageID
			s.PageID = &id
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
