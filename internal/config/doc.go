// Package config loads, normalizes, and validates evtsift configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// EVTSIFT_DECODER. Per-run inputs (evidence directory, output path, time
// window, event-ID lists) arrive as CLI flags; this package holds the knobs
// that persist across runs: decoder location and timeout, worker count,
// delimiter and placeholder, journal and log locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
