package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/utils"
)

// Field limits for visitor comments.
const (
	maxCommentName = 100
	maxCommentBody = 2000
)

// CommentHandler serves the public comment endpoints. Creation honors
// the comments_disable feature flag and sanitizes both fields before
// anything reaches the store.
type CommentHandler struct {
	Comments repository.CommentStore
	Flags    repository.ConfigStore
	Prod     bool
}

// NewCommentHandler constructs a CommentHandler. The comment store must
// be non-nil; flags may be nil in tests, which disables the flag check.
func NewCommentHandler(comments repository.CommentStore, flags repository.ConfigStore, prod bool) *CommentHandler {
	if comments == nil {
		panic("nil store passed to NewCommentHandler")
	}
	return &CommentHandler{Comments: comments, Flags: flags, Prod: prod}
}

// List handles GET /api/comments/:sketchId. The response is a bare
// JSON array, the shape the gallery front end has always consumed.
func (h *CommentHandler) List(c echo.Context) error {
	sketchID := c.Param("sketchId")
	if sketchID == "" || len(sketchID) > 64 {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	comments, err := h.Comments.ListBySketch(c.Request().Context(), sketchID)
	if err != nil {
		return respondInternal(c, "failed to load comments", err, !h.Prod)
	}
	return c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments/:sketchId.
func (h *CommentHandler) Create(c echo.Context) error {
	sketchID := c.Param("sketchId")
	if sketchID == "" || len(sketchID) > 64 {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	if h.flagEnabled(c, model.ConfigCommentsDisable) {
		return respondError(c, http.StatusForbidden, "comments are currently disabled")
	}
	var body struct {
		Name    string `json:"name"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	name, err := utils.SanitizeText(body.Name, maxCommentName)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "name contains disallowed content")
	}
	comment, err := utils.SanitizeText(body.Comment, maxCommentBody)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "comment contains disallowed content")
	}
	if _, err := h.Comments.Create(c.Request().Context(), sketchID, name, comment); err != nil {
		return respondInternal(c, "failed to save comment", err, !h.Prod)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "comment added"})
}

// Counts handles GET /api/comments/counts, one query feeding every
// thumbnail badge in the gallery.
func (h *CommentHandler) Counts(c echo.Context) error {
	counts, err := h.Comments.Counts(c.Request().Context())
	if err != nil {
		return respondInternal(c, "failed to load comment counts", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, counts)
}

// flagEnabled reads a Y/N feature flag; a missing flag or store error
// counts as "N" so a config hiccup never locks visitors out.
func (h *CommentHandler) flagEnabled(c echo.Context, key string) bool {
	if h.Flags == nil {
		return false
	}
	v, err := h.Flags.Get(c.Request().Context(), key)
	if err != nil {
		return false
	}
	return v == "Y"
}
