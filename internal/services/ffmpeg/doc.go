// Package ffmpeg wraps ffmpeg CLI invocations for seek-bounded audio
// extraction.
//
// The Client builds one ffmpeg command per track, seeking to the span start
// and bounding the read to the span duration so each invocation does work
// proportional to its own slice, not to the whole source. Output is written
// to a partial file that is renamed into place only on success; every
// failure path removes the partial so a retry starts clean.
//
// Command execution happens behind the Executor interface so tests can run
// the client without spawning processes.
package ffmpeg
