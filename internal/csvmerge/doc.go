// Package csvmerge funnels filtered records from all workers into the single
// merged CSV.
//
// One consumer goroutine owns the output file; producers hand records over a
// channel, so rows can never interleave mid-row no matter how many decoder
// workers are running. The header schema is the union of field names across
// every record of the run, in first-seen order, which forces buffering: rows
// are collected in memory and written at Close. Close runs on cancellation
// too, so an interrupted run still leaves a valid, merely truncated CSV.
package csvmerge
