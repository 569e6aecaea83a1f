package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel error markers. Pre-flight markers reject a run before any file is
// written; per-track markers are recorded on a single track's result and
// never abort sibling tracks.
var (
	// ErrNoMarkers rejects a run whose marker list is empty.
	ErrNoMarkers = errors.New("no markers")
	// ErrOutOfRange rejects a marker whose start lies outside [0, duration).
	ErrOutOfRange = errors.New("marker out of range")
	// ErrOverlap rejects markers that are not strictly increasing or whose
	// explicit end crosses a neighbouring marker.
	ErrOverlap = errors.New("marker overlap")

	// ErrFileExists marks a track whose destination already exists and
	// overwriting is disabled.
	ErrFileExists = errors.New("output file exists")
	// ErrTranscode marks a track whose external transcode failed.
	ErrTranscode = errors.New("transcode failed")
	// ErrTimeout marks a track whose transcode exceeded its deadline.
	ErrTimeout = errors.New("transcode timeout")
	// ErrMetadata marks a track whose audio exported but whose tags could
	// not be written.
	ErrMetadata = errors.New("metadata write failed")

	// ErrConfiguration marks invalid or unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of collaborating processes outside the
	// per-track taxonomy (probing, fetching).
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ErrorKind maps an error to the stable kind string used in reports and the
// history store. Returns "" for nil and "internal" for unclassified errors.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoMarkers):
		return "no_markers"
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrOverlap):
		return "overlap"
	case errors.Is(err, ErrFileExists):
		return "file_exists"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrTranscode):
		return "transcode"
	case errors.Is(err, ErrMetadata):
		return "metadata"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	default:
		return "internal"
	}
}

// IsPreflight reports whether an error belongs to the validation class that
// rejects a whole run before any output is written.
func IsPreflight(err error) bool {
	return errors.Is(err, ErrNoMarkers) || errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrOverlap)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
