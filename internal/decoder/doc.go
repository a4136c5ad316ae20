// Package decoder drives the external event-log decoder, one subprocess per
// input file.
//
// The decoder is treated as an opaque black box with a LogParser-style
// command line: it reads one .evt/.evtx file and writes its records as XML
// <ROW> elements to a temp file the adapter hands it. The adapter stages the
// source under a safe name, bounds the subprocess with a timeout, sniffs the
// output encoding (LogParser emits UTF-16 on most systems), and classifies
// every invocation as records, clean-but-empty, or failure. A failure never
// propagates beyond the file that caused it.
package decoder
