package textutil_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"tracksplit/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Intro", "Intro"},
		{"slashes", "AC/DC - Back in Black", "AC-DC - Back in Black"},
		{"removed characters", `What? "Why" <now>|`, "What Why now"},
		{"colon", "Part 1: Overture", "Part 1- Overture"},
		{"whitespace", "  padded  ", "padded"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeFileName(tc.input); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeFileNameTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := textutil.SanitizeFileName(long)
	if len(got) != 100 {
		t.Fatalf("expected 100-character result, got %d", len(got))
	}
}

func TestSanitizeFileNameTruncatesOnRuneBoundary(t *testing.T) {
	// Three bytes per rune; 100 is not a multiple of three, so a byte-wise
	// cut would split the rune straddling the limit.
	long := strings.Repeat("日", 200)
	got := textutil.SanitizeFileName(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if len(got) > 100 {
		t.Fatalf("expected at most 100 bytes, got %d", len(got))
	}
	if got != strings.Repeat("日", 33) {
		t.Fatalf("expected 33 whole runes, got %d bytes", len(got))
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := textutil.SanitizeToken("My Album (2021)"); got != "my_album__2021" {
		t.Fatalf("unexpected token %q", got)
	}
	if got := textutil.SanitizeToken("   "); got != "unknown" {
		t.Fatalf("expected fallback token, got %q", got)
	}
}

func TestDeriveAlbumTitle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"/tmp/the_dark_side.webm", "The Dark Side"},
		{"live-at-pompeii.m4a", "Live At Pompeii"},
		{"", "Unknown Album"},
		{"....", "Unknown Album"},
	}
	for _, tc := range cases {
		if got := textutil.DeriveAlbumTitle(tc.input); got != tc.want {
			t.Fatalf("DeriveAlbumTitle(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
