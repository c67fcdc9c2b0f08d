package model

import "time"

// Reaction kinds accepted by the API. Only LikeKind and DislikeKind
// participate in the mutually exclusive like/dislike toggle; the
// remaining smiley kinds are plain counters.
const (
	LikeKind    = "like"
	DislikeKind = "dislike"
	LoveKind    = "love"
	FunnyKind   = "funny"
	WowKind     = "wow"
	SadKind     = "sad"
	AngryKind   = "angry"
)

// SmileyKinds enumerates every reaction kind the react endpoint accepts.
var SmileyKinds = map[string]bool{
	LikeKind:  true,
	LoveKind:  true,
	FunnyKind: true,
	WowKind:   true,
	SadKind:   true,
	AngryKind: true,
}

// ReactionCounter is one row of the reaction_counters table.  A counter
// exists per (subject, kind) pair, is created on the first reaction and
// is never deleted.  Count never goes below zero.
//
// Fields:
//  SubjectID – reaction_counters.subject_id, the sketch being reacted to.
//  Kind      – reaction_counters.kind, one of the kind constants above.
//  Count     – reaction_counters.count, non-negative total.
//  UpdatedAt – reaction_counters.updated_at, last modification.
type ReactionCounter struct {
	SubjectID string
	Kind      string
	Count     uint32
	UpdatedAt time.Time
}

// ReactionMember records that a device has an active reaction on a
// subject. At most one like-family row exists per (subject, device);
// smiley kinds are keyed by (subject, device, kind).
type ReactionMember struct {
	SubjectID string    // reaction_members.subject_id
	DeviceID  string    // reaction_members.device_id
	Kind      string    // reaction_members.kind
	JoinedAt  time.Time // reaction_members.joined_at
}

// SubjectStats is the aggregate reaction state of a single subject as
// returned to clients: like/dislike totals plus the device IDs that
// currently hold each reaction.
type SubjectStats struct {
	SubjectID  string   `json:"sketchId"`
	Likes      uint32   `json:"likes"`
	Dislikes   uint32   `json:"dislikes"`
	LikedBy    []string `json:"likedBy"`
	DislikedBy []string `json:"dislikedBy"`
}

// ToggleResult is the post-mutation state returned from a like/dislike
// toggle, computed inside the same transaction as the mutation itself so
// callers never observe a half-applied update.
type ToggleResult struct {
	SubjectID    string `json:"sketchId"`
	Likes        uint32 `json:"likes"`
	Dislikes     uint32 `json:"dislikes"`
	UserLiked    bool   `json:"userLiked"`
	UserDisliked bool   `json:"userDisliked"`
}
