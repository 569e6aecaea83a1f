package export

import (
	"fmt"

	"tracksplit/internal/marker"
)

// Span is one resolved [Start, End) slice of the source asset, assigned to a
// single output track. Spans for one asset are strictly increasing and
// non-overlapping; gaps before the first marker or after an explicit end are
// simply excluded from output.
type Span struct {
	// Index is 1-based and stable across the run.
	Index int
	Start float64
	End   float64
	Title string
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Resolve turns validated markers into concrete spans. A marker's span ends
// at its explicit end when present, otherwise at the next marker's start, or
// at the asset end for the last marker. Missing titles default to a
// positional "Track N" label. Resolution is deterministic and total:
// validation already established start < end for every resulting span.
func Resolve(validated marker.Validated) []Span {
	markers := validated.Markers()
	spans := make([]Span, 0, len(markers))
	for i, m := range markers {
		end := validated.Duration()
		if m.HasEnd() {
			end = m.End
		} else if i+1 < len(markers) {
			end = markers[i+1].Start
		}
		title := m.Title
		if title == "" {
			title = fmt.Sprintf("Track %d", i+1)
		}
		spans = append(spans, Span{
			Index: i + 1,
			Start: m.Start,
			End:   end,
			Title: title,
		})
	}
	return spans
}
