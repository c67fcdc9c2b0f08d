package repository // repository for visit counting

import (
	"context"
	"database/sql"
)

// VisitStore records page visits. The handler validates the page type
// before calling Record; the store only cares about the key tuple.
type VisitStore interface {
	Record(ctx context.Context, pageType string, pageID *string, visitorKey string) error
}

// VisitRepo persists visit records in MySQL. Rows are unique per
// (page_type, page_id, visitor_key); repeat visits land on the same row
// through the atomic upsert-increment, so concurrent visits never lose
// an increment.
type VisitRepo struct {
	db *sql.DB
}

// NewVisitRepo constructs a VisitRepo given a DB handle.
func NewVisitRepo(db *sql.DB) *VisitRepo {
	return &VisitRepo{db: db}
}

// Record upserts one visit. The unique key treats NULL page ids as
// distinct in MySQL, so pageless types (home, about, contact) store the
// empty string instead of NULL.
func (r *VisitRepo) Record(ctx context.Context, pageType string, pageID *string, visitorKey string) error {
	id := ""
	if pageID != nil {
		id = *pageID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO visit_records (page_type, page_id, visitor_key, visit_count)
		 VALUES (?, ?, ?, 1)
		 ON DUPLICATE KEY UPDATE visit_count = visit_count + 1, updated_at = CURRENT_TIMESTAMP`,
		pageType, id, visitorKey)
	return err
}
