package pipeline

// Stats aggregates the terminal outcome of a run.
//
// The record counters satisfy the accounting invariant
// RecordsDecoded == RecordsWritten + RecordsFiltered + RecordsDropped:
// every decoded record is either written, excluded by the filter, or
// dropped with an ERROR entry.
type Stats struct {
	FilesTotal  int
	FilesOK     int
	FilesEmpty  int
	FilesFailed int

	RecordsDecoded  int
	RecordsWritten  int
	RecordsFiltered int
	RecordsDropped  int

	// Interrupted is set when the run was cancelled before finishing.
	Interrupted bool
}

// AllFailed reports whether every input file failed to decode.
func (s Stats) AllFailed() bool {
	return s.FilesTotal > 0 && s.FilesFailed == s.FilesTotal
}
