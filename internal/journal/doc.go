// Package journal persists run history in SQLite.
//
// One row per run plus one row per input file outcome, so an analyst can ask
// "which files failed last night" without re-reading failure logs. The
// journal is strictly observational: a journal write that fails is logged
// and the run carries on. Schema changes bump schemaVersion; users delete
// the database to adopt a new schema.
package journal
