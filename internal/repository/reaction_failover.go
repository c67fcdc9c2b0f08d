package repository // failover composition of the primary and fallback reaction stores

import (
	"context"
	"log"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// FailoverReactionStore tries the primary store first and switches to
// the fallback only when the primary fails with a connectivity-class
// error (see IsUnavailable). Statement-level errors are returned as-is
// so bad input is never masked by the degraded store.
//
// The fallback is meant for local development; its state is not merged
// back into the primary store once the database recovers.
type FailoverReactionStore struct {
	Primary  ReactionStore
	Fallback ReactionStore
}

// NewFailoverReactionStore composes a primary store with a fallback.
// Fallback may be nil, in which case primary errors pass through.
func NewFailoverReactionStore(primary, fallback ReactionStore) *FailoverReactionStore {
	return &FailoverReactionStore{Primary: primary, Fallback: fallback}
}

func (f *FailoverReactionStore) useFallback(op string, err error) bool {
	if f.Fallback == nil || !IsUnavailable(err) {
		return false
	}
	log.Printf("reaction store: primary unavailable during %s, using file fallback: %v", op, err)
	return true
}

// Stats delegates to the primary store, falling back on connectivity failure.
func (f *FailoverReactionStore) Stats(ctx context.Context, subjectID string) (*model.SubjectStats, error) {
	res, err := f.Primary.Stats(ctx, subjectID)
	if err != nil && f.useFallback("stats", err) {
		return f.Fallback.Stats(ctx, subjectID)
	}
	return res, err
}

// Toggle delegates to the primary store, falling back on connectivity failure.
func (f *FailoverReactionStore) Toggle(ctx context.Context, subjectID, deviceID, action string) (*model.ToggleResult, error) {
	res, err := f.Primary.Toggle(ctx, subjectID, deviceID, action)
	if err != nil && f.useFallback("toggle", err) {
		return f.Fallback.Toggle(ctx, subjectID, deviceID, action)
	}
	return res, err
}

// Counts delegates to the primary store, falling back on connectivity failure.
func (f *FailoverReactionStore) Counts(ctx context.Context, subjectID string) (map[string]uint32, error) {
	res, err := f.Primary.Counts(ctx, subjectID)
	if err != nil && f.useFallback("counts", err) {
		return f.Fallback.Counts(ctx, subjectID)
	}
	return res, err
}

// React delegates to the primary store, falling back on connectivity failure.
func (f *FailoverReactionStore) React(ctx context.Context, subjectID, deviceID, kind, action string) (uint32, error) {
	res, err := f.Primary.React(ctx, subjectID, deviceID, kind, action)
	if err != nil && f.useFallback("react", err) {
		return f.Fallback.React(ctx, subjectID, deviceID, kind, action)
	}
	return res, err
}
