package handler

import (
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mirayaksel/sketchfolio/internal/model"
	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/utils"
)

// ReactionHandler serves the per-sketch reaction endpoints. It talks to
// the ReactionStore interface only, so at startup it receives the
// failover composition of the MySQL store and the file fallback.
type ReactionHandler struct {
	Store repository.ReactionStore // reaction state, primary + fallback behind one interface
	Prod  bool                     // suppresses error details in responses
}

// NewReactionHandler constructs a ReactionHandler. The store must be non-nil.
func NewReactionHandler(store repository.ReactionStore, prod bool) *ReactionHandler {
	if store == nil {
		panic("nil store passed to NewReactionHandler")
	}
	return &ReactionHandler{Store: store, Prod: prod}
}

// subjectID pulls and checks the sketch id path parameter.
func subjectID(c echo.Context) (string, bool) {
	id := c.Param("id")
	if id == "" || len(id) > 64 {
		return "", false
	}
	return id, true
}

// GetStats handles GET /api/sketches/:id/stats. Reads never mutate
// state; two calls with no intervening writes return identical results.
func (h *ReactionHandler) GetStats(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	stats, err := h.Store.Stats(c.Request().Context(), id)
	if err != nil {
		return respondInternal(c, "failed to load reaction stats", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, stats)
}

// Toggle handles POST /api/sketches/:id/like. The body carries the
// client-generated device identity and the action; the response is the
// post-mutation state from the same store operation.
func (h *ReactionHandler) Toggle(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	var body struct {
		DeviceID string `json:"deviceId"`
		Action   string `json:"action"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if !utils.ValidDeviceID(body.DeviceID) {
		return respondError(c, http.StatusBadRequest, "deviceId is required")
	}
	switch body.Action {
	case repository.ActionLike, repository.ActionUnlike, repository.ActionDislike, repository.ActionUndislike:
	default:
		return respondError(c, http.StatusBadRequest, "action must be like, unlike, dislike or undislike")
	}
	res, err := h.Store.Toggle(c.Request().Context(), id, body.DeviceID, body.Action)
	if err != nil {
		return respondInternal(c, "failed to apply reaction", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, res)
}

// GetReactions handles GET /api/sketches/:id/reactions, returning the
// per-kind counter map for the smiley bar.
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	counts, err := h.Store.Counts(c.Request().Context(), id)
	if err != nil {
		return respondInternal(c, "failed to load reactions", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, counts)
}

// React handles POST /api/sketches/:id/react for the smiley reactions.
// The response keeps the legacy flat shape {success, count}.
func (h *ReactionHandler) React(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "invalid sketch id")
	}
	var body struct {
		SmileyType string `json:"smileyType"`
		DeviceID   string `json:"deviceId"`
		Action     string `json:"action"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.SmileyKinds[body.SmileyType] {
		return respondError(c, http.StatusBadRequest, "unknown smiley type")
	}
	if !utils.ValidDeviceID(body.DeviceID) {
		return respondError(c, http.StatusBadRequest, "deviceId is required")
	}
	if body.Action == "" {
		body.Action = repository.ReactAdd
	}
	if body.Action != repository.ReactAdd && body.Action != repository.ReactRemove {
		return respondError(c, http.StatusBadRequest, "action must be add or remove")
	}
	count, err := h.Store.React(c.Request().Context(), id, body.DeviceID, body.SmileyType, body.Action)
	if err != nil {
		return respondInternal(c, "failed to apply reaction", err, !h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}
