package marker

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker is one user-declared cut point. Start and End are offsets in
// seconds from the beginning of the asset. End is optional; zero means
// "runs until the next marker" (a real end of zero can never be valid
// because an end must exceed its start). Title is optional and defaulted
// during span resolution.
type Marker struct {
	Start float64
	End   float64
	Title string
}

// HasEnd reports whether the marker carries an explicit end offset.
func (m Marker) HasEnd() bool {
	return m.End > 0
}

// String renders the marker the way tracklists are written.
func (m Marker) String() string {
	out := FormatTimestamp(m.Start)
	if m.HasEnd() {
		out += "-" + FormatTimestamp(m.End)
	}
	if strings.TrimSpace(m.Title) != "" {
		out += " " + m.Title
	}
	return out
}

// ParseTimestamp converts a mm:ss or hh:mm:ss string to seconds.
func ParseTimestamp(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q: expected mm:ss or hh:mm:ss", value)
	}
	fields := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q: expected mm:ss or hh:mm:ss", value)
		}
		fields = append(fields, n)
	}
	// Seconds must be a valid sexagesimal digit pair; minutes too once an
	// hours field is present. Bare minutes may exceed 59 ("90:00").
	if fields[len(fields)-1] > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: seconds out of range", value)
	}
	if len(fields) == 2 {
		return float64(fields[0]*60 + fields[1]), nil
	}
	if fields[1] > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: minutes out of range", value)
	}
	return float64(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

// FormatTimestamp converts seconds into mm:ss, or h:mm:ss above one hour.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
