package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"tracksplit/internal/services"
	"tracksplit/internal/textutil"
)

// outputExtension is fixed; the engine always emits MP3.
const outputExtension = ".mp3"

// FileName renders a span's output file name from a naming template using
// the {index} and {title} placeholders. The index is zero-padded to the
// width of the track count (minimum two digits) so names sort correctly.
func FileName(template string, span Span, trackCount int) string {
	width := len(fmt.Sprintf("%d", trackCount))
	if width < 2 {
		width = 2
	}

	title := textutil.SanitizeFileName(span.Title)
	if title == "" {
		title = fmt.Sprintf("Track %d", span.Index)
	}

	name := template
	name = strings.ReplaceAll(name, "{index}", fmt.Sprintf("%0*d", width, span.Index))
	name = strings.ReplaceAll(name, "{title}", title)
	name = textutil.SanitizeFileName(name)
	if name == "" {
		name = fmt.Sprintf("%0*d", width, span.Index)
	}
	return name + outputExtension
}

// OutputPath joins the output directory with a span's rendered file name.
func OutputPath(dir, template string, span Span, trackCount int) string {
	return filepath.Join(dir, FileName(template, span, trackCount))
}

// distinctOutputPaths rejects span sets whose rendered file names collide.
// Spans write to their destinations without locking, so two spans resolving
// to the same path would race on the partial file or replace each other's
// audio. A title-only template with duplicate titles is the usual cause.
func distinctOutputPaths(dir, template string, spans []Span) error {
	seen := make(map[string]int, len(spans))
	for _, span := range spans {
		path := OutputPath(dir, template, span, len(spans))
		prior, ok := seen[path]
		if ok {
			detail := fmt.Sprintf("tracks %d and %d both resolve to %s; add {index} to the naming template or retitle the markers", prior, span.Index, path)
			return services.Wrap(services.ErrConfiguration, "export", "plan", detail, nil)
		}
		seen[path] = span.Index
	}
	return nil
}
