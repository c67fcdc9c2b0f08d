package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/mirayaksel/sketchfolio/internal/model"
)

// erroringStore is a ReactionStore whose every method fails with a
// fixed error, standing in for an unreachable or misbehaving primary.
type erroringStore struct{ err error }

func (s *erroringStore) Stats(context.Context, string) (*model.SubjectStats, error) {
	return nil, s.err
}
func (s *erroringStore) Toggle(context.Context, string, string, string) (*model.ToggleResult, error) {
	return nil, s.err
}
func (s *erroringStore) Counts(context.Context, string) (map[string]uint32, error) {
	return nil, s.err
}
func (s *erroringStore) React(context.Context, string, string, string, string) (uint32, error) {
	return 0, s.err
}

func TestFailoverUsesFallbackOnConnectivityError(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	fallback := NewFileReactionStore(filepath.Join(t.TempDir(), "reactions.json"))
	store := NewFailoverReactionStore(&erroringStore{err: dialErr}, fallback)

	res, err := store.Toggle(context.Background(), "11", "device-aaaa", ActionLike)
	if err != nil {
		t.Fatalf("expected fallback to serve the toggle, got %v", err)
	}
	if res.Likes != 1 {
		t.Fatalf("fallback toggle wrong: %+v", res)
	}

	stats, err := store.Stats(context.Background(), "11")
	if err != nil {
		t.Fatalf("expected fallback stats, got %v", err)
	}
	if stats.Likes != 1 {
		t.Fatalf("fallback stats wrong: %+v", stats)
	}
}

func TestFailoverPassesThroughStatementErrors(t *testing.T) {
	stmtErr := errors.New("Error 1062: duplicate entry")
	fallback := NewFileReactionStore(filepath.Join(t.TempDir(), "reactions.json"))
	store := NewFailoverReactionStore(&erroringStore{err: stmtErr}, fallback)

	if _, err := store.Toggle(context.Background(), "11", "device-aaaa", ActionLike); !errors.Is(err, stmtErr) {
		t.Fatalf("statement errors must not be masked by the fallback, got %v", err)
	}
}

func TestIsUnavailableClassification(t *testing.T) {
	unavailable := []error{
		driver.ErrBadConn,
		ErrStoreUnavailable,
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")},
	}
	for _, e := range unavailable {
		if !IsUnavailable(e) {
			t.Fatalf("expected %v to be classified unavailable", e)
		}
	}
	if IsUnavailable(nil) {
		t.Fatalf("nil must not be unavailable")
	}
	if IsUnavailable(errors.New("syntax error")) {
		t.Fatalf("plain errors must not be unavailable")
	}
}

func TestFailoverWithoutFallbackReturnsPrimaryError(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}
	store := NewFailoverReactionStore(&erroringStore{err: dialErr}, nil)
	if _, err := store.Stats(context.Background(), "11"); err == nil {
		t.Fatalf("expected the primary error to surface when no fallback is configured")
	}
}
