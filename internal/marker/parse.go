package marker

import (
	"regexp"
	"sort"
	"strings"
)

// Line forms recognized in free-form tracklist text. Timestamps may be
// mm:ss or hh:mm:ss.
var (
	// "1:23 - Song Title" or "1:23 Song Title"
	timestampFirstPattern = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)(?:\s*[-–—]\s*|\s+)(.+)$`)
	// "Song Title - 1:23"
	titleFirstPattern = regexp.MustCompile(`^(.+?)\s*[-–—]\s*(\d{1,2}:\d{2}(?::\d{2})?)$`)

	leadingNumberingPattern = regexp.MustCompile(`^[\d.)\]\-–—\s]+`)
	bracketedPattern        = regexp.MustCompile(`[\[(][^)\]]*[)\]]`)
)

// minTitleLength filters noise the line patterns match in prose-heavy
// descriptions ("at 1:23 I ...").
const minTitleLength = 3

// ParseTracklist extracts markers from free-form text such as a video
// description or a tracklist file. Recognized line forms:
//
//	1:23 Song Title
//	1:23 - Song Title
//	Song Title - 1:23
//	Song Title | 1:23 | 4:56
//
// The pipe form may carry an explicit end offset. Unparseable lines are
// skipped. The result is sorted by start offset; an empty result is not an
// error here, it fails later during validation.
func ParseTracklist(text string) []Marker {
	var markers []Marker
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m, ok := parsePipeLine(line); ok {
			markers = append(markers, m)
			continue
		}
		if m, ok := parsePatternLine(line); ok {
			markers = append(markers, m)
		}
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Start < markers[j].Start
	})
	return markers
}

func parsePipeLine(line string) (Marker, bool) {
	if !strings.Contains(line, "|") {
		return Marker{}, false
	}
	parts := strings.Split(line, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return Marker{}, false
	}
	title := strings.TrimSpace(parts[0])
	start, err := ParseTimestamp(parts[1])
	if err != nil || title == "" {
		return Marker{}, false
	}
	m := Marker{Start: start, Title: title}
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		end, err := ParseTimestamp(parts[2])
		if err != nil {
			return Marker{}, false
		}
		m.End = end
	}
	return m, true
}

func parsePatternLine(line string) (Marker, bool) {
	var timestamp, title string
	if match := timestampFirstPattern.FindStringSubmatch(line); match != nil {
		timestamp, title = match[1], match[2]
	} else if match := titleFirstPattern.FindStringSubmatch(line); match != nil {
		title, timestamp = match[1], match[2]
	} else {
		return Marker{}, false
	}

	start, err := ParseTimestamp(timestamp)
	if err != nil {
		return Marker{}, false
	}
	title = CleanTitle(title)
	if len(title) < minTitleLength {
		return Marker{}, false
	}
	return Marker{Start: start, Title: title}, true
}

// CleanTitle strips list numbering and bracketed annotations from a scraped
// track title.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = leadingNumberingPattern.ReplaceAllString(title, "")
	title = bracketedPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
