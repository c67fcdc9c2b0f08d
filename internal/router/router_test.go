package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/handler"
	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/repository"
)

// Minimal in-memory stores so the full route table can be registered
// without a database or Redis.

type stubVisits struct{ recorded int }

func (s *stubVisits) Record(context.Context, string, *string, string) error {
	s.recorded++
	return nil
}

type stubStats struct{}

func (stubStats) Stats(context.Context, string, string) (*model.AnalyticsStats, error) {
	return &model.AnalyticsStats{
		Overall:        []model.OverallStat{},
		Detailed:       []model.DetailedStat{},
		TopSketches:    []model.DetailedStat{},
		RecentActivity: []model.RecentVisit{},
	}, nil
}

type stubComments struct{}

func (stubComments) ListBySketch(context.Context, string) ([]model.Comment, error) {
	return []model.Comment{}, nil
}
func (stubComments) Create(_ context.Context, sketchID, name, comment string) (*model.Comment, error) {
	return &model.Comment{ID: 1, SketchID: sketchID, Name: name, Comment: comment}, nil
}
func (stubComments) Counts(context.Context) (map[string]uint64, error) {
	return map[string]uint64{}, nil
}
func (stubComments) Delete(context.Context, uint64) error { return nil }

type stubFlags struct{}

func (stubFlags) Get(context.Context, string) (string, error) { return "", repository.ErrNotFound }
func (stubFlags) All(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}
func (stubFlags) Set(context.Context, string, string) error { return nil }

type stubContacts struct{}

func (stubContacts) Create(_ context.Context, name, email, subject, message string) (*model.ContactMessage, error) {
	return &model.ContactMessage{ID: 1, Name: name, Email: email, Subject: subject, Message: message}, nil
}
func (stubContacts) List(context.Context) ([]model.ContactMessage, error) {
	return []model.ContactMessage{}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	reactions := repository.NewFileReactionStore(filepath.Join(t.TempDir(), "reactions.json"))
	h := Handlers{
		Reactions: handler.NewReactionHandler(reactions, false),
		Analytics: handler.NewAnalyticsHandler(&stubVisits{}, stubStats{}, false),
		Comments:  handler.NewCommentHandler(stubComments{}, stubFlags{}, false),
		Config:    handler.NewConfigHandler(stubFlags{}, false),
		Contact:   handler.NewContactHandler(stubContacts{}, stubFlags{}, nil, false),
	}
	e := echo.New()
	RegisterRoutes(e, h, nil, "")
	return e
}

func TestMethodGateReturnsEnvelope(t *testing.T) {
	e := newTestServer(t)
	// DELETE on a GET/POST-only path must answer 405 with the canonical
	// envelope and no side effects
	req := httptest.NewRequest(http.MethodDelete, "/api/sketches/11/like", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	var env map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("405 body is not JSON: %v", err)
	}
	if env["success"] != false || env["error"] != "method not allowed" {
		t.Fatalf("unexpected 405 envelope: %v", env)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var env map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("404 body is not JSON: %v", err)
	}
	if env["success"] != false {
		t.Fatalf("unexpected 404 envelope: %v", env)
	}
}

func TestHealthRoute(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz failed: %d %q", rec.Code, rec.Body.String())
	}
}

func TestLikeRouteEndToEnd(t *testing.T) {
	e := newTestServer(t)
	body := `{"deviceId":"device-aaaa","action":"like"}`
	req := httptest.NewRequest(http.MethodPost, "/api/sketches/11/like", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("like failed: %d %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Success bool               `json:"success"`
		Data    model.ToggleResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !env.Success || env.Data.Likes != 1 || !env.Data.UserLiked {
		t.Fatalf("unexpected like result: %+v", env)
	}
}

func TestCommentsCountsNotShadowedByParamRoute(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/comments/counts", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("counts route failed: %d %s", rec.Code, rec.Body.String())
	}
	var env map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if env["success"] != true {
		t.Fatalf("counts must return the envelope, got %v", env)
	}
}

func TestAdminRoutesAbsentWhenUnconfigured(t *testing.T) {
	e := newTestServer(t) // Admin handler nil
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("admin login should not be registered, got %d", rec.Code)
	}
}
