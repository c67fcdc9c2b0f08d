package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVisitorKeyPrefersCountryHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/analytics/track", nil)
	req.Header.Set("CF-IPCountry", "de")
	if key := VisitorKey(req); key != "DE" {
		t.Fatalf("expected country key DE, got %q", key)
	}
}

func TestVisitorKeyHashesWithoutCountry(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/analytics/track", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	req.Header.Set("User-Agent", "test-agent")

	key := VisitorKey(req)
	if len(key) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", key)
	}
	if strings.Contains(key, "203.0.113.9") || strings.Contains(key, ".") {
		t.Fatalf("raw address must never appear in the key, got %q", key)
	}

	// same request attributes must map to the same key
	if again := VisitorKey(req); again != key {
		t.Fatalf("key not stable: %q vs %q", key, again)
	}

	// a different user agent must map to a different key
	req.Header.Set("User-Agent", "other-agent")
	if other := VisitorKey(req); other == key {
		t.Fatalf("expected distinct key for different user agent")
	}
}

func TestVisitorKeyUsesForwardedFor(t *testing.T) {
	a := httptest.NewRequest("POST", "/", nil)
	a.RemoteAddr = "10.0.0.1:1000"
	a.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	a.Header.Set("User-Agent", "ua")

	b := httptest.NewRequest("POST", "/", nil)
	b.RemoteAddr = "10.0.0.2:2000" // different proxy hop, same origin
	b.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.2")
	b.Header.Set("User-Agent", "ua")

	if VisitorKey(a) != VisitorKey(b) {
		t.Fatalf("same forwarded origin should produce the same key")
	}
}

func TestValidDeviceID(t *testing.T) {
	valid := []string{"device-1234", "1699999999999.abc_DEF", strings.Repeat("a", 128)}
	for _, s := range valid {
		if !ValidDeviceID(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "short", strings.Repeat("a", 129), "has space 123", "semi;colon1"}
	for _, s := range invalid {
		if ValidDeviceID(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
