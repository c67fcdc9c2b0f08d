package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/utils"
)

// AdminHandler serves the admin SPA's API: login plus the few
// moderation operations (comment deletion, flag updates, contact
// inbox). The routes other than login sit behind the AdminAuth
// middleware.
type AdminHandler struct {
	PasswordHash string // bcrypt hash of the single admin password
	JWTSecret    string // signing secret for session tokens
	TokenTTLMin  int    // session token lifetime
	Comments     repository.CommentStore
	Flags        repository.ConfigStore
	Contacts     repository.ContactStore
	Prod         bool

	// InvalidateConfig drops the cached GET /api/config response after
	// a flag write. Optional; nil when no response cache is in play.
	InvalidateConfig func(context.Context) error
}

// Login handles POST /api/admin/login. There is one admin and no
// username; the password is verified against the configured bcrypt
// hash and a short-lived HS256 token is issued.
func (h *AdminHandler) Login(c echo.Context) error {
	if h.PasswordHash == "" || h.JWTSecret == "" {
		return respondError(c, http.StatusServiceUnavailable, "admin interface not configured")
	}
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if body.Password == "" {
		return respondError(c, http.StatusBadRequest, "password is required")
	}
	if !utils.VerifyPassword(h.PasswordHash, body.Password) {
		return respondError(c, http.StatusUnauthorized, "invalid password")
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, h.TokenTTLMin)
	if err != nil {
		return respondInternal(c, "failed to issue token", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, echo.Map{
		"token":     tok.Token,
		"expiresAt": tok.Exp,
	})
}

// SetConfig handles PUT /api/admin/config, upserting one feature flag.
func (h *AdminHandler) SetConfig(c echo.Context) error {
	var body struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}
	if body.Key == "" || len(body.Key) > 64 {
		return respondError(c, http.StatusBadRequest, "key is required")
	}
	if body.Value != "Y" && body.Value != "N" {
		return respondError(c, http.StatusBadRequest, "value must be Y or N")
	}
	if err := h.Flags.Set(c.Request().Context(), body.Key, body.Value); err != nil {
		return respondInternal(c, "failed to update config", err, !h.Prod)
	}
	if h.InvalidateConfig != nil {
		if err := h.InvalidateConfig(c.Request().Context()); err != nil {
			// the flag is persisted; a cached read can go stale for at
			// most one TTL, so this is logged rather than surfaced
			log.Printf("admin: config cache invalidation failed: %v", err)
		}
	}
	return respondData(c, http.StatusOK, map[string]string{body.Key: body.Value})
}

// DeleteComment handles DELETE /api/admin/comments/:id.
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return respondError(c, http.StatusBadRequest, "invalid comment id")
	}
	if err := h.Comments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "comment not found")
		}
		return respondInternal(c, "failed to delete comment", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, echo.Map{"deleted": id})
}

// ListContacts handles GET /api/admin/contact, the stored-message inbox.
func (h *AdminHandler) ListContacts(c echo.Context) error {
	messages, err := h.Contacts.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, "failed to load messages", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, messages)
}
