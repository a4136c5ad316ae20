// Package filter evaluates the time-window and event-ID predicates that
// decide which decoded records reach the merged CSV.
//
// The Spec is built once before any worker starts and is immutable
// afterwards. Exclusions always win over inclusions so an explicitly
// excluded event ID can never leak into the output.
package filter
