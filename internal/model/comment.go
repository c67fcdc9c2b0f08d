package model

import "time"

// Comment is one row of the comments table.  Comments belong to a
// sketch from the static catalog (no foreign key in the database),
// are created by visitors after sanitization and can only be removed
// by an admin.  There is no update operation.
type Comment struct {
	ID        uint64    `json:"id"`         // comments.id
	SketchID  string    `json:"sketch_id"`  // comments.sketch_id
	Name      string    `json:"name"`       // comments.name
	Comment   string    `json:"comment"`    // comments.comment
	CreatedAt time.Time `json:"created_at"` // comments.created_at
}
