package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by the hosting platform. It returns
// a plain "ok" with a 200 status and touches no backing store.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
