package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/repository"
)

// memComments is an in-memory CommentStore.
type memComments struct {
	nextID   uint64
	comments []model.Comment
}

func (m *memComments) ListBySketch(_ context.Context, sketchID string) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range m.comments {
		if c.SketchID == sketchID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) Create(_ context.Context, sketchID, name, comment string) (*model.Comment, error) {
	m.nextID++
	c := model.Comment{ID: m.nextID, SketchID: sketchID, Name: name, Comment: comment, CreatedAt: time.Now()}
	m.comments = append(m.comments, c)
	return &c, nil
}

func (m *memComments) Counts(context.Context) (map[string]uint64, error) {
	counts := map[string]uint64{}
	for _, c := range m.comments {
		counts[c.SketchID]++
	}
	return counts, nil
}

func (m *memComments) Delete(_ context.Context, id uint64) error {
	for i, c := range m.comments {
		if c.ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memFlags is an in-memory ConfigStore.
type memFlags struct{ flags map[string]string }

func (m *memFlags) Get(_ context.Context, key string) (string, error) {
	v, ok := m.flags[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}
func (m *memFlags) All(context.Context) (map[string]string, error) { return m.flags, nil }
func (m *memFlags) Set(_ context.Context, key, value string) error {
	if m.flags == nil {
		m.flags = map[string]string{}
	}
	m.flags[key] = value
	return nil
}

func postComment(t *testing.T, h *CommentHandler, sketchID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/comments/"+sketchID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sketchId")
	c.SetParamValues(sketchID)
	if err := h.Create(c); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	return rec
}

func TestCommentScriptNameRejected(t *testing.T) {
	store := &memComments{}
	h := NewCommentHandler(store, &memFlags{}, false)

	rec := postComment(t, h, "9", `{"name":"<script>x</script>","comment":"hello"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("script name should be 400, got %d", rec.Code)
	}
	if len(store.comments) != 0 {
		t.Fatalf("rejected comment must not be stored")
	}
}

func TestCommentCreateAndList(t *testing.T) {
	store := &memComments{}
	h := NewCommentHandler(store, &memFlags{}, false)

	rec := postComment(t, h, "9", `{"name":"Ann","comment":"Nice work!"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid comment should be 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/comments/9", nil)
	lrec := httptest.NewRecorder()
	c := e.NewContext(req, lrec)
	c.SetParamNames("sketchId")
	c.SetParamValues("9")
	if err := h.List(c); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	var list []model.Comment
	if err := json.Unmarshal(lrec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list is not a bare array: %v (%s)", err, lrec.Body.String())
	}
	if len(list) != 1 || list[0].Name != "Ann" || list[0].Comment != "Nice work!" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCommentDisabledFlag(t *testing.T) {
	store := &memComments{}
	flags := &memFlags{flags: map[string]string{model.ConfigCommentsDisable: "Y"}}
	h := NewCommentHandler(store, flags, false)

	rec := postComment(t, h, "9", `{"name":"Ann","comment":"Nice work!"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("disabled comments should be 403, got %d", rec.Code)
	}
}

func TestCommentCounts(t *testing.T) {
	store := &memComments{}
	h := NewCommentHandler(store, &memFlags{}, false)
	postComment(t, h, "9", `{"name":"Ann","comment":"one"}`)
	postComment(t, h, "9", `{"name":"Ben","comment":"two"}`)
	postComment(t, h, "4", `{"name":"Cy","comment":"three"}`)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/comments/counts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Counts(c); err != nil {
		t.Fatalf("counts returned error: %v", err)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	if data["9"].(float64) != 2 || data["4"].(float64) != 1 {
		t.Fatalf("unexpected counts: %v", data)
	}
}
