// Package marker models the ordered cut points that divide one audio asset
// into tracks.
//
// Key responsibilities:
//   - The Marker type: a start offset, an optional explicit end, and an
//     optional title.
//   - Timestamp parsing for the mm:ss and hh:mm:ss forms users write.
//   - Extraction of markers from free-form tracklist text (video
//     descriptions, marker files, manual "Title | start | end" lines).
//   - Pre-flight validation against the asset duration. Validation is the
//     only failing step; once a set of markers is Validated, span resolution
//     downstream is total.
//
// Markers are value types. The engine receives an immutable snapshot and
// never observes edits made after a run starts.
package marker
