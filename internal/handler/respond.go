package handler // shared response envelope helpers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every endpoint answers with one canonical envelope:
// {success:true, data:...} or {success:false, error, details?}. The
// details field carries the underlying error text only outside
// production, so clients never need to probe multiple response shapes.

// respondData writes a success envelope.
func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// respondError writes a failure envelope with a client-safe message.
func respondError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// respondInternal logs the cause server-side and writes a generic 500,
// attaching details only when showDetails is set (non-production).
func respondInternal(c echo.Context, msg string, cause error, showDetails bool) error {
	log.Printf("%s %s: %s: %v", c.Request().Method, c.Path(), msg, cause)
	body := echo.Map{"success": false, "error": msg}
	if showDetails && cause != nil {
		body["details"] = cause.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// HTTPErrorHandler converts Echo's routing errors (404, 405 from the
// method-gate) into the canonical envelope so even unmatched requests
// answer with the same shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusMethodNotAllowed:
			msg = "method not allowed"
		default:
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
	} else {
		log.Printf("%s %s: unhandled error: %v", c.Request().Method, c.Path(), err)
	}
	_ = c.JSON(status, echo.Map{"success": false, "error": msg})
}
