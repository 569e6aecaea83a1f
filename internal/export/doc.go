// Package export is the track segmentation and export engine.
//
// One run turns a validated marker sequence into concrete spans, drives a
// seek-bounded transcode per span, tags each exported file, and aggregates
// a per-track report. Key pieces:
//
//   - Resolve: validated markers -> ordered, non-overlapping spans
//   - Executor: one span -> one output file (overwrite policy, timeout and
//     transcode failure classification, clean destination on failure)
//   - Coordinator: bounded-concurrency orchestration across all spans,
//     results always reported in span order
//
// Per-track failures are isolated: a failed span is recorded in its result
// and never prevents sibling spans from being attempted. Only pre-flight
// marker validation rejects a run as a whole, before any file is written.
package export
