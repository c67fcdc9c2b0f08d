package model

import "time"

// Page types accepted by the analytics track endpoint.  Unknown types
// are rejected before the store is touched.
var PageTypes = map[string]bool{
	"home":    true,
	"about":   true,
	"contact": true,
	"sketch":  true,
	"gallery": true,
}

// VisitRecord is one row of the visit_records table.  Rows are unique
// per (page_type, page_id, visitor_key) and visit_count only ever grows
// via the upsert-increment in the repository.
//
// Fields:
//  PageType   – visit_records.page_type, one of the PageTypes keys.
//  PageID     – visit_records.page_id, nullable (home/about/contact have none).
//  VisitorKey – visit_records.visitor_key, country code or hashed ip+ua.
//  VisitCount – visit_records.visit_count, at least 1.
//  CreatedAt  – visit_records.created_at, first visit for this key.
//  UpdatedAt  – visit_records.updated_at, most recent visit.
type VisitRecord struct {
	PageType   string
	PageID     *string
	VisitorKey string
	VisitCount uint32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OverallStat is one row of the per-page-type rollup: total visits and
// distinct visitor keys, ordered by total visits descending.
type OverallStat struct {
	PageType       string `json:"page_type"`
	TotalVisits    uint64 `json:"total_visits"`
	UniqueVisitors uint64 `json:"unique_visitors"`
}

// DetailedStat is one row of the per-page rollup (page_type, page_id).
type DetailedStat struct {
	PageType       string  `json:"page_type"`
	PageID         *string `json:"page_id"`
	TotalVisits    uint64  `json:"total_visits"`
	UniqueVisitors uint64  `json:"unique_visitors"`
}

// RecentVisit is one entry of the last-24h activity window.
type RecentVisit struct {
	PageType   string    `json:"page_type"`
	PageID     *string   `json:"page_id"`
	VisitCount uint32    `json:"visit_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnalyticsStats bundles the four rollup views returned by the stats
// endpoint.
type AnalyticsStats struct {
	Overall        []OverallStat  `json:"overall"`
	Detailed       []DetailedStat `json:"detailed"`
	TopSketches    []DetailedStat `json:"topSketches"`
	RecentActivity []RecentVisit  `json:"recentActivity"`
}
