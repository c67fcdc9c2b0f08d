package repository // repository for comment persistence

import (
	"context"
	"database/sql"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// CommentStore is the storage contract for sketch comments. Input is
// sanitized by the handler before it reaches the store.
type CommentStore interface {
	ListBySketch(ctx context.Context, sketchID string) ([]model.Comment, error)
	Create(ctx context.Context, sketchID, name, comment string) (*model.Comment, error)
	Counts(ctx context.Context) (map[string]uint64, error)
	Delete(ctx context.Context, id uint64) error
}

// CommentRepo persists comments in MySQL.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo constructs a CommentRepo given a DB handle.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// ListBySketch returns all comments for one sketch, oldest first.
func (r *CommentRepo) ListBySketch(ctx context.Context, sketchID string) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sketch_id, name, comment, created_at
		 FROM comments WHERE sketch_id = ? ORDER BY created_at ASC`, sketchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.SketchID, &c.Name, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a comment and returns the stored row including its
// generated id and timestamp.
func (r *CommentRepo) Create(ctx context.Context, sketchID, name, comment string) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (sketch_id, name, comment) VALUES (?, ?, ?)`,
		sketchID, name, comment)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c := &model.Comment{ID: uint64(id), SketchID: sketchID, Name: name, Comment: comment}
	err = r.db.QueryRowContext(ctx,
		`SELECT created_at FROM comments WHERE id = ?`, id).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Counts returns the number of comments per sketch id across the whole
// table, feeding the gallery's per-thumbnail badges in one query.
func (r *CommentRepo) Counts(ctx context.Context) (map[string]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sketch_id, COUNT(*) FROM comments GROUP BY sketch_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[string]uint64{}
	for rows.Next() {
		var sketchID string
		var n uint64
		if err := rows.Scan(&sketchID, &n); err != nil {
			return nil, err
		}
		counts[sketchID] = n
	}
	return counts, rows.Err()
}

// Delete removes one comment by id. Deleting a missing comment returns
// ErrNotFound so the admin UI can tell the difference.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
