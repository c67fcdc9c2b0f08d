package middleware

// admin.go gates the admin-only routes. The site has exactly one admin,
// so the check is a fixed role claim on an HS256 token issued by the
// login endpoint; there is no user lookup.

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminAuth returns middleware that requires a valid admin bearer
// token. When the admin surface is not configured (empty secret) every
// request is rejected rather than silently allowed.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"success": false,
					"error":   "admin interface not configured",
				})
			}
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "missing bearer token",
				})
			}
			raw := strings.TrimSpace(auth[len(prefix):])
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "invalid or expired token",
				})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok || claims["role"] != "admin" {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "admin role required",
				})
			}
			return next(c)
		}
	}
}
