package marker_test

import (
	"testing"

	"tracksplit/internal/marker"
)

func TestParseTracklistTimestampFirst(t *testing.T) {
	text := `Greatest hits, all timestamps below!

0:00 - Speak to Me
1:30 Breathe
5:28 — On the Run

thanks for listening`
	markers := marker.ParseTracklist(text)
	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d: %v", len(markers), markers)
	}
	wantTitles := []string{"Speak to Me", "Breathe", "On the Run"}
	wantStarts := []float64{0, 90, 328}
	for i, m := range markers {
		if m.Title != wantTitles[i] || m.Start != wantStarts[i] {
			t.Fatalf("marker %d = %+v, want %q at %v", i+1, m, wantTitles[i], wantStarts[i])
		}
		if m.HasEnd() {
			t.Fatalf("marker %d should not carry an explicit end", i+1)
		}
	}
}

func TestParseTracklistTitleFirst(t *testing.T) {
	markers := marker.ParseTracklist("Money - 2:03\nUs and Them - 8:49")
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].Title != "Money" || markers[0].Start != 123 {
		t.Fatalf("unexpected first marker %+v", markers[0])
	}
}

func TestParseTracklistPipeFormatWithEnd(t *testing.T) {
	markers := marker.ParseTracklist("Eclipse | 40:12 | 42:15")
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	m := markers[0]
	if m.Title != "Eclipse" || m.Start != 2412 || m.End != 2535 {
		t.Fatalf("unexpected marker %+v", m)
	}
}

func TestParseTracklistSortsByStart(t *testing.T) {
	markers := marker.ParseTracklist("5:00 Later\n0:10 Earlier")
	if len(markers) != 2 || markers[0].Title != "Earlier" {
		t.Fatalf("expected markers sorted by start, got %v", markers)
	}
}

func TestParseTracklistCleansScrapedTitles(t *testing.T) {
	markers := marker.ParseTracklist("0:00 1. Intro (live) \n2:00 2) Main Theme [remastered]")
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].Title != "Intro" {
		t.Fatalf("unexpected title %q", markers[0].Title)
	}
	if markers[1].Title != "Main Theme" {
		t.Fatalf("unexpected title %q", markers[1].Title)
	}
}

func TestParseTracklistSkipsNoise(t *testing.T) {
	markers := marker.ParseTracklist("no timestamps here\n99:99:99 broken\n0:05 ok track")
	if len(markers) != 1 || markers[0].Title != "ok track" {
		t.Fatalf("expected only the valid line, got %v", markers)
	}
}
