package utils // admin session token helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed HS256 JWT for the admin SPA along with
// its expiry. Admin sessions are the only authenticated surface of the
// API; visitors never log in.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an admin access token. The claims are
// a fixed role plus the standard exp/iat pair; there is no per-user
// subject because the site has exactly one admin.
func NewAdminToken(secret string, ttlMin int) (AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
