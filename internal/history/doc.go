// Package history persists split-run reports in a local SQLite database so
// past runs and their per-track outcomes can be listed and inspected later.
package history
