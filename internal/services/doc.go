// Package services defines shared utilities consumed by the export engine
// and external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so failures from ffmpeg,
//     ffprobe, and yt-dlp carry a consistent classification.
//   - Context helpers that stamp run identifiers and track indexes for
//     logging.
//
// Use these helpers when wiring new engine logic so error handling and
// observability stay uniform across the pipeline.
package services
