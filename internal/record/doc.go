// Package record defines the raw event-log record model shared by the
// decoder, filter, and merge stages.
//
// A record is an ordered list of named string fields exactly as the external
// decoder emitted them. Two fields carry pipeline semantics: EventID drives
// the include/exclude filters and TimeGenerated drives the time window.
// Everything else passes through untouched until sanitization.
package record
