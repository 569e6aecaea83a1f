package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	trackKey contextKey = "track"
)

// WithRunID annotates context with the export run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the export run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(runIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithTrack annotates context with the 1-based track index being processed.
func WithTrack(ctx context.Context, index int) context.Context {
	if index <= 0 {
		return ctx
	}
	return context.WithValue(ctx, trackKey, index)
}

// TrackFromContext extracts the track index if present.
func TrackFromContext(ctx context.Context) (int, bool) {
	if idx, ok := ctx.Value(trackKey).(int); ok && idx > 0 {
		return idx, true
	}
	return 0, false
}
