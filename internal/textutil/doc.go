// Package textutil provides text processing utilities for filename
// sanitization and track title cleanup.
//
// The primary use cases are:
//   - Sanitizing user-supplied track titles for safe filesystem use
//   - Deriving a display title (album name) from a source file path
//   - Lowercase token generation for log-friendly identifiers
//
// Sanitized names strip characters that are unsafe on common filesystems and
// are truncated to a bounded length so templated output paths stay valid.
package textutil
