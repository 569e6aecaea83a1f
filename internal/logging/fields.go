package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for export run identifiers.
	FieldRunID = "run_id"
	// FieldTrack is the standardized structured logging key for 1-based track indexes.
	FieldTrack = "track"
	// FieldTitle is the standardized structured logging key for track titles.
	FieldTitle = "title"
	// FieldSource is the standardized structured logging key for source asset paths.
	FieldSource = "source"
)
