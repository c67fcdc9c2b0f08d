package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/repository"
)

// ConfigHandler serves the public feature-flag endpoint. Flags are
// read on nearly every page load, so the route sits behind the Redis
// response cache when one is configured.
type ConfigHandler struct {
	Flags repository.ConfigStore
	Prod  bool
}

// NewConfigHandler constructs a ConfigHandler. The store must be non-nil.
func NewConfigHandler(flags repository.ConfigStore, prod bool) *ConfigHandler {
	if flags == nil {
		panic("nil store passed to NewConfigHandler")
	}
	return &ConfigHandler{Flags: flags, Prod: prod}
}

// Get handles GET /api/config. With a key query parameter it returns
// that single flag; without one it returns every flag.
func (h *ConfigHandler) Get(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		flags, err := h.Flags.All(c.Request().Context())
		if err != nil {
			return respondInternal(c, "failed to load config", err, !h.Prod)
		}
		return respondData(c, http.StatusOK, flags)
	}
	value, err := h.Flags.Get(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "unknown config key")
		}
		return respondInternal(c, "failed to load config", err, !h.Prod)
	}
	return respondData(c, http.StatusOK, map[string]string{key: value})
}
