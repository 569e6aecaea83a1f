// Package config loads, normalizes, and validates tracksplit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files with strict decoding so unknown options
// are rejected instead of silently ignored. The Config type centralizes
// every knob the CLI and the export engine need: output and staging
// directories, encode settings, fetch behavior, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
