// Package pipeline orchestrates one evtsift run: discover event-log files,
// fan decoder invocations across the worker pool, filter and sanitize the
// decoded records, merge them into one CSV, and account for every record and
// every failure.
//
// Failure isolation is the package's core contract: one file's outcome never
// affects another's, and the run only fails outright on a fatal preflight
// condition or when every single input failed.
package pipeline
