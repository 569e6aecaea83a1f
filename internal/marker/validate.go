package marker

import (
	"fmt"

	"tracksplit/internal/services"
)

// ValidationError reports which marker violated a pre-flight rule. Index is
// 1-based; zero means the marker list as a whole was rejected.
type ValidationError struct {
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Index <= 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("marker %d: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validated is an immutable marker sequence that passed pre-flight
// validation against a concrete asset duration. Only Validate constructs
// it, so downstream span resolution cannot fail.
type Validated struct {
	markers  []Marker
	duration float64
}

// Markers returns a copy of the validated sequence.
func (v Validated) Markers() []Marker {
	out := make([]Marker, len(v.markers))
	copy(out, v.markers)
	return out
}

// Len returns the number of validated markers.
func (v Validated) Len() int {
	return len(v.markers)
}

// Duration returns the asset duration the markers were validated against.
func (v Validated) Duration() float64 {
	return v.duration
}

// Validate checks a marker sequence against the asset duration. Rules:
// starts strictly increasing within [0, duration); an explicit end must
// exceed its own start and must not cross the next marker's start (or the
// asset duration for the last marker). An empty sequence is rejected.
// Validation is pure; callers must not resolve spans from a sequence that
// failed here.
func Validate(markers []Marker, totalDuration float64) (Validated, error) {
	if totalDuration <= 0 {
		return Validated{}, services.Wrap(services.ErrConfiguration, "marker", "validate",
			fmt.Sprintf("asset duration must be positive, got %.3f", totalDuration), nil)
	}
	if len(markers) == 0 {
		return Validated{}, &ValidationError{Err: services.ErrNoMarkers}
	}

	for i, m := range markers {
		index := i + 1
		if m.Start < 0 || m.Start >= totalDuration {
			return Validated{}, &ValidationError{
				Index: index,
				Err: fmt.Errorf("%w: start %s outside [0, %s)",
					services.ErrOutOfRange, FormatTimestamp(m.Start), FormatTimestamp(totalDuration)),
			}
		}
		if i > 0 && m.Start <= markers[i-1].Start {
			return Validated{}, &ValidationError{
				Index: index,
				Err: fmt.Errorf("%w: start %s does not increase past marker %d (%s)",
					services.ErrOverlap, FormatTimestamp(m.Start), i, FormatTimestamp(markers[i-1].Start)),
			}
		}
		if !m.HasEnd() {
			continue
		}
		if m.End <= m.Start {
			return Validated{}, &ValidationError{
				Index: index,
				Err: fmt.Errorf("%w: end %s not after start %s",
					services.ErrOverlap, FormatTimestamp(m.End), FormatTimestamp(m.Start)),
			}
		}
		limit := totalDuration
		boundary := "asset end"
		if i+1 < len(markers) {
			limit = markers[i+1].Start
			boundary = fmt.Sprintf("marker %d start", i+2)
		}
		if m.End > limit {
			return Validated{}, &ValidationError{
				Index: index,
				Err: fmt.Errorf("%w: end %s exceeds %s (%s)",
					services.ErrOverlap, FormatTimestamp(m.End), boundary, FormatTimestamp(limit)),
			}
		}
	}

	snapshot := make([]Marker, len(markers))
	copy(snapshot, markers)
	return Validated{markers: snapshot, duration: totalDuration}, nil
}
