// Package logging assembles the structured slog loggers used across
// tracksplit commands and the export engine.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized field keys (run id, track index,
// component) so every part of a run logs data with the same shape. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
