package repository // reaction store contract shared by the primary and fallback stores

import (
	"context"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// Toggle actions accepted by the like endpoint.  Like and dislike are
// mutually exclusive per device; applying one retracts the other.
const (
	ActionLike      = "like"
	ActionUnlike    = "unlike"
	ActionDislike   = "dislike"
	ActionUndislike = "undislike"
)

// Smiley actions accepted by the react endpoint.
const (
	ReactAdd    = "add"
	ReactRemove = "remove"
)

// ReactionStore is the storage contract for reaction state.  Two
// implementations exist: ReactionRepo backed by MySQL (authoritative)
// and FileReactionStore backed by a local JSON document (degraded
// mode).  FailoverReactionStore composes the two and is what handlers
// receive at startup.
//
// Every mutating method returns the post-mutation state computed in the
// same store operation, so callers never need a follow-up read that
// could observe a half-applied update.
type ReactionStore interface {
	// Stats returns like/dislike totals and membership lists for one subject.
	Stats(ctx context.Context, subjectID string) (*model.SubjectStats, error)
	// Toggle applies a like/unlike/dislike/undislike action for a device.
	// A like retracts an existing dislike by the same device and vice
	// versa. Counters move only when a membership row is actually
	// inserted or deleted, and never drop below zero.
	Toggle(ctx context.Context, subjectID, deviceID, action string) (*model.ToggleResult, error)
	// Counts returns the per-kind counters for one subject, with zero
	// entries for smiley kinds that have never been used.
	Counts(ctx context.Context, subjectID string) (map[string]uint32, error)
	// React adds or removes a smiley reaction and returns the new count
	// for that kind.
	React(ctx context.Context, subjectID, deviceID, kind, action string) (uint32, error)
}
