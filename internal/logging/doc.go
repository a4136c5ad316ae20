// Package logging builds the slog loggers used across evtsift.
//
// Two formats are supported: a console handler meant for humans watching a
// run (colored levels when stdout is a terminal) and a JSON handler for
// machine consumption. Output fans out to stdout plus the run log file under
// paths.log_dir. Components attach themselves with NewComponentLogger so
// every line names its origin.
package logging
