package utils // input sanitization for visitor-submitted text

import (
	"errors"
	"strings"
)

// ErrDisallowedContent is returned when submitted text matches the
// script denylist. Handlers translate it into a 400 with no mutation.
var ErrDisallowedContent = errors.New("disallowed content")

// ErrEmptyContent is returned when text is empty after sanitization.
var ErrEmptyContent = errors.New("empty content")

// denylist catches script-like substrings before any stripping happens,
// so "<script>x</script>" is rejected outright rather than silently
// cleaned into "x". Matching is case-insensitive.
var denylist = []string{
	"<script",
	"</script",
	"javascript:",
	"vbscript:",
	"onerror=",
	"onload=",
	"onclick=",
	"onmouseover=",
	"data:text/html",
	"<iframe",
	"<object",
	"<embed",
	"expression(",
}

// containsDisallowed reports whether s matches the denylist.
func containsDisallowed(s string) bool {
	lower := strings.ToLower(s)
	for _, pat := range denylist {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	return false
}

// stripTags removes anything between < and > including the brackets.
// An unterminated tag swallows the rest of the string.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// asciiOnly drops every rune outside printable ASCII, keeping newlines
// and tabs so multi-line comments survive.
func asciiOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7e) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeText validates and cleans one field of visitor-submitted
// text: the denylist is checked first (rejection, not cleanup), then
// HTML tags and non-ASCII runes are stripped, whitespace is trimmed and
// the result is bounded to maxLen runes. Empty output is an error so a
// comment that was nothing but tags does not get stored as "".
func SanitizeText(s string, maxLen int) (string, error) {
	if containsDisallowed(s) {
		return "", ErrDisallowedContent
	}
	out := strings.TrimSpace(asciiOnly(stripTags(s)))
	if out == "" {
		return "", ErrEmptyContent
	}
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out, nil
}

// ValidEmail performs the shallow shape check used by the contact form:
// one @ with a dot somewhere after it. Deliverability is the email
// worker's problem, not the API's.
func ValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	if strings.Count(s, "@") != 1 {
		return false
	}
	dot := strings.LastIndex(s, ".")
	return dot > at+1 && dot < len(s)-1
}
