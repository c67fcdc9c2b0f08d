package utils

import (
	"errors"
	"testing"
)

func TestSanitizeTextRejectsScriptPatterns(t *testing.T) {
	cases := []string{
		"<script>x</script>",
		"<SCRIPT src=evil.js>",
		"click javascript:alert(1)",
		"<img onerror=steal()>",
		"<iframe src=x>",
		"body onload=bad()",
	}
	for _, in := range cases {
		if _, err := SanitizeText(in, 100); !errors.Is(err, ErrDisallowedContent) {
			t.Fatalf("expected %q to be rejected, got err=%v", in, err)
		}
	}
}

func TestSanitizeTextStripsTagsAndNonASCII(t *testing.T) {
	out, err := SanitizeText("  <b>Ann</b> café ", 100)
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if out != "Ann caf" {
		t.Fatalf("expected stripped output %q, got %q", "Ann caf", out)
	}
}

func TestSanitizeTextRejectsEmptyAfterStripping(t *testing.T) {
	if _, err := SanitizeText("<b></b>", 100); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected empty-content error, got %v", err)
	}
	if _, err := SanitizeText("   ", 100); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected empty-content error for whitespace, got %v", err)
	}
}

func TestSanitizeTextKeepsPlainComments(t *testing.T) {
	out, err := SanitizeText("Nice work!", 2000)
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if out != "Nice work!" {
		t.Fatalf("plain text should pass through, got %q", out)
	}
}

func TestSanitizeTextBoundsLength(t *testing.T) {
	long := make([]byte, 50)
	for i := range long {
		long[i] = 'a'
	}
	out, err := SanitizeText(string(long), 10)
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("expected output bounded to 10, got %d", len(out))
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "ann.artist@example.org"}
	for _, s := range valid {
		if !ValidEmail(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "plain", "@b.co", "a@b", "a@@b.co", "a@b.", "a@.co"}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
