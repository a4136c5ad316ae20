// Package sanitize makes field values delimiter-safe for the merged CSV.
//
// Sanitization is deliberately lossy: delimiters inside values become a
// placeholder rune and embedded newlines become spaces, so every output row
// stays on one physical line and plain line-oriented tools (grep, cut, awk)
// work on the result. No quoting or escaping is attempted.
package sanitize
