package repository // repository for contact message persistence

import (
	"context"
	"database/sql"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// ContactStore is the storage contract for contact-form messages.
type ContactStore interface {
	Create(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
}

// ContactRepo persists contact messages in MySQL. The row is written
// before the notification event is published so a broker outage never
// loses the message itself.
type ContactRepo struct {
	db *sql.DB
}

// NewContactRepo constructs a ContactRepo given a DB handle.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// Create inserts a message and returns the stored row with its
// generated id and timestamp.
func (r *ContactRepo) Create(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)`,
		name, email, subject, message)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	m := &model.ContactMessage{ID: uint64(id), Name: name, Email: email, Subject: subject, Message: message}
	err = r.db.QueryRowContext(ctx,
		`SELECT created_at FROM contact_messages WHERE id = ?`, id).Scan(&m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns all stored messages, newest first, for the admin inbox.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
