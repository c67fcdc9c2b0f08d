package repository // repository for reaction persistence in MySQL

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// ReactionRepo is the authoritative ReactionStore backed by MySQL. All
// mutations run inside a transaction: membership rows gate the counter
// updates, so a device can move a counter by at most one in each
// direction, and the returned state is read in the same transaction as
// the mutation.
type ReactionRepo struct {
	db *sql.DB
}

// NewReactionRepo constructs a ReactionRepo given a DB handle.
func NewReactionRepo(db *sql.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Stats returns like/dislike totals plus the device IDs currently
// holding each reaction for one subject. A subject nobody has reacted
// to yields zero counts and empty lists, not an error.
func (r *ReactionRepo) Stats(ctx context.Context, subjectID string) (*model.SubjectStats, error) {
	stats := &model.SubjectStats{
		SubjectID:  subjectID,
		LikedBy:    []string{},
		DislikedBy: []string{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, count FROM reaction_counters WHERE subject_id = ? AND kind IN (?, ?)`,
		subjectID, model.LikeKind, model.DislikeKind)
	if err != nil {
		return nil, fmt.Errorf("query counters: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count uint32
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		switch kind {
		case model.LikeKind:
			stats.Likes = count
		case model.DislikeKind:
			stats.Dislikes = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.db.QueryContext(ctx,
		`SELECT device_id, kind FROM reaction_members WHERE subject_id = ? AND kind IN (?, ?) ORDER BY joined_at`,
		subjectID, model.LikeKind, model.DislikeKind)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer members.Close()
	for members.Next() {
		var device, kind string
		if err := members.Scan(&device, &kind); err != nil {
			return nil, err
		}
		switch kind {
		case model.LikeKind:
			stats.LikedBy = append(stats.LikedBy, device)
		case model.DislikeKind:
			stats.DislikedBy = append(stats.DislikedBy, device)
		}
	}
	return stats, members.Err()
}

// Toggle applies a like-family action for a device and returns the
// post-mutation state. Like and dislike are mutually exclusive: liking
// retracts an active dislike by the same device first, and vice versa.
func (r *ReactionRepo) Toggle(ctx context.Context, subjectID, deviceID, action string) (*model.ToggleResult, error) {
	var kind, opposite string
	var add bool
	switch action {
	case ActionLike:
		kind, opposite, add = model.LikeKind, model.DislikeKind, true
	case ActionUnlike:
		kind, opposite, add = model.LikeKind, model.DislikeKind, false
	case ActionDislike:
		kind, opposite, add = model.DislikeKind, model.LikeKind, true
	case ActionUndislike:
		kind, opposite, add = model.DislikeKind, model.LikeKind, false
	default:
		return nil, fmt.Errorf("unknown toggle action %q", action)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if add {
		// retract the opposite reaction first so a device holds at most
		// one of like/dislike per subject
		removed, err := deleteMemberTx(ctx, tx, subjectID, deviceID, opposite)
		if err != nil {
			return nil, err
		}
		if removed {
			if err := decrementTx(ctx, tx, subjectID, opposite); err != nil {
				return nil, err
			}
		}
		inserted, err := insertMemberTx(ctx, tx, subjectID, deviceID, kind)
		if err != nil {
			return nil, err
		}
		if inserted {
			if err := incrementTx(ctx, tx, subjectID, kind); err != nil {
				return nil, err
			}
		}
	} else {
		removed, err := deleteMemberTx(ctx, tx, subjectID, deviceID, kind)
		if err != nil {
			return nil, err
		}
		if removed {
			if err := decrementTx(ctx, tx, subjectID, kind); err != nil {
				return nil, err
			}
		}
	}

	res, err := toggleStateTx(ctx, tx, subjectID, deviceID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// Counts returns the counter value per kind for one subject. Every
// smiley kind is present in the result, zero when unused.
func (r *ReactionRepo) Counts(ctx context.Context, subjectID string) (map[string]uint32, error) {
	counts := make(map[string]uint32, len(model.SmileyKinds))
	for kind := range model.SmileyKinds {
		counts[kind] = 0
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, count FROM reaction_counters WHERE subject_id = ?`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("query counters: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count uint32
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		if model.SmileyKinds[kind] {
			counts[kind] = count
		}
	}
	return counts, rows.Err()
}

// React adds or removes a smiley reaction for a device and returns the
// new count for that kind. Adding an already-present reaction or
// removing an absent one leaves the counter untouched.
func (r *ReactionRepo) React(ctx context.Context, subjectID, deviceID, kind, action string) (uint32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	switch action {
	case ReactAdd:
		inserted, err := insertMemberTx(ctx, tx, subjectID, deviceID, kind)
		if err != nil {
			return 0, err
		}
		if inserted {
			if err := incrementTx(ctx, tx, subjectID, kind); err != nil {
				return 0, err
			}
		}
	case ReactRemove:
		removed, err := deleteMemberTx(ctx, tx, subjectID, deviceID, kind)
		if err != nil {
			return 0, err
		}
		if removed {
			if err := decrementTx(ctx, tx, subjectID, kind); err != nil {
				return 0, err
			}
		}
	default:
		return 0, fmt.Errorf("unknown react action %q", action)
	}

	var count uint32
	err = tx.QueryRowContext(ctx,
		`SELECT count FROM reaction_counters WHERE subject_id = ? AND kind = ?`,
		subjectID, kind).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return count, nil
}

// insertMemberTx records a membership row, reporting whether a new row
// was actually inserted. INSERT IGNORE keeps a repeated reaction by the
// same device from moving the counter twice.
func insertMemberTx(ctx context.Context, tx *sql.Tx, subjectID, deviceID, kind string) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO reaction_members (subject_id, device_id, kind) VALUES (?, ?, ?)`,
		subjectID, deviceID, kind)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// deleteMemberTx removes a membership row, reporting whether one existed.
func deleteMemberTx(ctx context.Context, tx *sql.Tx, subjectID, deviceID, kind string) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM reaction_members WHERE subject_id = ? AND device_id = ? AND kind = ?`,
		subjectID, deviceID, kind)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// incrementTx bumps the counter for (subject, kind) atomically, creating
// the row at 1 when it does not exist yet.
func incrementTx(ctx context.Context, tx *sql.Tx, subjectID, kind string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO reaction_counters (subject_id, kind, count) VALUES (?, ?, 1)
		 ON DUPLICATE KEY UPDATE count = count + 1, updated_at = CURRENT_TIMESTAMP`,
		subjectID, kind)
	return err
}

// decrementTx lowers the counter with a floor at zero. The column is
// unsigned, so the subtraction is done in signed arithmetic before
// GREATEST clamps it.
func decrementTx(ctx context.Context, tx *sql.Tx, subjectID, kind string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reaction_counters
		 SET count = GREATEST(CAST(count AS SIGNED) - 1, 0), updated_at = CURRENT_TIMESTAMP
		 WHERE subject_id = ? AND kind = ?`,
		subjectID, kind)
	return err
}

// toggleStateTx reads the post-mutation like/dislike state for the
// responding device inside the ongoing transaction.
func toggleStateTx(ctx context.Context, tx *sql.Tx, subjectID, deviceID string) (*model.ToggleResult, error) {
	res := &model.ToggleResult{SubjectID: subjectID}

	rows, err := tx.QueryContext(ctx,
		`SELECT kind, count FROM reaction_counters WHERE subject_id = ? AND kind IN (?, ?)`,
		subjectID, model.LikeKind, model.DislikeKind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count uint32
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		switch kind {
		case model.LikeKind:
			res.Likes = count
		case model.DislikeKind:
			res.Dislikes = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := tx.QueryContext(ctx,
		`SELECT kind FROM reaction_members WHERE subject_id = ? AND device_id = ? AND kind IN (?, ?)`,
		subjectID, deviceID, model.LikeKind, model.DislikeKind)
	if err != nil {
		return nil, err
	}
	defer members.Close()
	for members.Next() {
		var kind string
		if err := members.Scan(&kind); err != nil {
			return nil, err
		}
		switch kind {
		case model.LikeKind:
			res.UserLiked = true
		case model.DislikeKind:
			res.UserDisliked = true
		}
	}
	return res, members.Err()
}
