package utils // visitor attribution helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// VisitorKey derives the deduplication attribute for visit counting.
// It prefers the CDN-provided country header (country-level
// granularity, no personal data at all); without one it hashes client
// IP + user agent and keeps 16 hex chars, so a raw address is never
// stored.
func VisitorKey(r *http.Request) string {
	if country := strings.TrimSpace(r.Header.Get("CF-IPCountry")); country != "" && country != "XX" {
		return strings.ToUpper(country)
	}
	sum := sha256.Sum256([]byte(clientIP(r) + "|" + r.UserAgent()))
	return hex.EncodeToString(sum[:])[:16]
}

// clientIP resolves the originating address behind proxies: first entry
// of X-Forwarded-For, then X-Real-IP, then the socket peer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			xff = xff[:i]
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return strings.TrimSpace(rip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ValidDeviceID checks the client-generated identity token: 8 to 128
// characters of [A-Za-z0-9._-]. The identity is voluntary and spoofable
// by design; this only keeps junk out of the membership table.
func ValidDeviceID(s string) bool {
	if len(s) < 8 || len(s) > 128 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
