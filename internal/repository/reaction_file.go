package repository // degraded-mode reaction store backed by a local JSON document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// FileReactionStore mirrors the ReactionStore semantics on top of a
// single JSON document on disk. It exists so local development keeps
// working when no database is reachable; it is not authoritative and a
// later successful write to the primary store supersedes it.
//
// The whole document is read, mutated in memory and rewritten on every
// mutation. A mutex serializes access within this process; concurrent
// writers from other processes can still clobber each other, which is
// an accepted limitation of the degraded mode.
type FileReactionStore struct {
	path string
	mu   sync.Mutex
}

// fileSubject is the on-disk state for one subject.
type fileSubject struct {
	Likes      uint32              `json:"likes"`
	Dislikes   uint32              `json:"dislikes"`
	LikedBy    []string            `json:"likedBy"`
	DislikedBy []string            `json:"dislikedBy"`
	Smileys    map[string]uint32   `json:"smileys,omitempty"`
	SmileyBy   map[string][]string `json:"smileyBy,omitempty"`
}

// fileDoc is the full on-disk document, keyed by subject id.
type fileDoc struct {
	Subjects map[string]*fileSubject `json:"subjects"`
}

// NewFileReactionStore constructs a store writing to the given path.
// The file is created lazily on the first mutation.
func NewFileReactionStore(path string) *FileReactionStore {
	return &FileReactionStore{path: path}
}

func (s *FileReactionStore) load() (*fileDoc, error) {
	doc := &fileDoc{Subjects: map[string]*fileSubject{}}
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("corrupt fallback store %s: %w", s.path, err)
	}
	if doc.Subjects == nil {
		doc.Subjects = map[string]*fileSubject{}
	}
	return doc, nil
}

func (s *FileReactionStore) save(doc *fileDoc) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (d *fileDoc) subject(id string) *fileSubject {
	sub, ok := d.Subjects[id]
	if !ok {
		sub = &fileSubject{LikedBy: []string{}, DislikedBy: []string{}}
		d.Subjects[id] = sub
	}
	return sub
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// Stats returns the stored like/dislike state for one subject.
func (s *FileReactionStore) Stats(_ context.Context, subjectID string) (*model.SubjectStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	stats := &model.SubjectStats{SubjectID: subjectID, LikedBy: []string{}, DislikedBy: []string{}}
	if sub, ok := doc.Subjects[subjectID]; ok {
		stats.Likes = sub.Likes
		stats.Dislikes = sub.Dislikes
		stats.LikedBy = append(stats.LikedBy, sub.LikedBy...)
		stats.DislikedBy = append(stats.DislikedBy, sub.DislikedBy...)
	}
	return stats, nil
}

// Toggle mirrors the primary store's membership-gated toggle: counters
// move only when the device's membership actually changed, and the
// like/dislike pair stays mutually exclusive.
func (s *FileReactionStore) Toggle(_ context.Context, subjectID, deviceID, action string) (*model.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	sub := doc.subject(subjectID)

	switch action {
	case ActionLike:
		if contains(sub.DislikedBy, deviceID) {
			sub.DislikedBy = remove(sub.DislikedBy, deviceID)
			if sub.Dislikes > 0 {
				sub.Dislikes--
			}
		}
		if !contains(sub.LikedBy, deviceID) {
			sub.LikedBy = append(sub.LikedBy, deviceID)
			sub.Likes++
		}
	case ActionUnlike:
		if contains(sub.LikedBy, deviceID) {
			sub.LikedBy = remove(sub.LikedBy, deviceID)
			if sub.Likes > 0 {
				sub.Likes--
			}
		}
	case ActionDislike:
		if contains(sub.LikedBy, deviceID) {
			sub.LikedBy = remove(sub.LikedBy, deviceID)
			if sub.Likes > 0 {
				sub.Likes--
			}
		}
		if !contains(sub.DislikedBy, deviceID) {
			sub.DislikedBy = append(sub.DislikedBy, deviceID)
			sub.Dislikes++
		}
	case ActionUndislike:
		if contains(sub.DislikedBy, deviceID) {
			sub.DislikedBy = remove(sub.DislikedBy, deviceID)
			if sub.Dislikes > 0 {
				sub.Dislikes--
			}
		}
	default:
		return nil, fmt.Errorf("unknown toggle action %q", action)
	}

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &model.ToggleResult{
		SubjectID:    subjectID,
		Likes:        sub.Likes,
		Dislikes:     sub.Dislikes,
		UserLiked:    contains(sub.LikedBy, deviceID),
		UserDisliked: contains(sub.DislikedBy, deviceID),
	}, nil
}

// Counts returns the smiley counters for one subject, zero-filled for
// unused kinds. Likes are reported under the "like" kind so the two
// reaction surfaces agree.
func (s *FileReactionStore) Counts(_ context.Context, subjectID string) (map[string]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]uint32, len(model.SmileyKinds))
	for kind := range model.SmileyKinds {
		counts[kind] = 0
	}
	if sub, ok := doc.Subjects[subjectID]; ok {
		counts[model.LikeKind] = sub.Likes
		for kind, n := range sub.Smileys {
			if model.SmileyKinds[kind] && kind != model.LikeKind {
				counts[kind] = n
			}
		}
	}
	return counts, nil
}

// React adds or removes a smiley reaction for a device and returns the
// new count for that kind.
func (s *FileReactionStore) React(ctx context.Context, subjectID, deviceID, kind, action string) (uint32, error) {
	if kind == model.LikeKind {
		// the like smiley shares state with the toggle endpoint
		toggleAction := ActionLike
		if action == ReactRemove {
			toggleAction = ActionUnlike
		}
		res, err := s.Toggle(ctx, subjectID, deviceID, toggleAction)
		if err != nil {
			return 0, err
		}
		return res.Likes, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	sub := doc.subject(subjectID)
	if sub.Smileys == nil {
		sub.Smileys = map[string]uint32{}
	}
	if sub.SmileyBy == nil {
		sub.SmileyBy = map[string][]string{}
	}

	switch action {
	case ReactAdd:
		if !contains(sub.SmileyBy[kind], deviceID) {
			sub.SmileyBy[kind] = append(sub.SmileyBy[kind], deviceID)
			sub.Smileys[kind]++
		}
	case ReactRemove:
		if contains(sub.SmileyBy[kind], deviceID) {
			sub.SmileyBy[kind] = remove(sub.SmileyBy[kind], deviceID)
			if sub.Smileys[kind] > 0 {
				sub.Smileys[kind]--
			}
		}
	default:
		return 0, fmt.Errorf("unknown react action %q", action)
	}

	if err := s.save(doc); err != nil {
		return 0, err
	}
	return sub.Smileys[kind], nil
}
