package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Names of the fields the pipeline interprets. The decoder emits them with
// exactly these names for both .evt and .evtx inputs.
const (
	FieldEventID       = "EventID"
	FieldTimeGenerated = "TimeGenerated"
	FieldSourceFile    = "SourceFile"
)

// Field is one named value in decoder column order.
type Field struct {
	Name  string
	Value string
}

// Raw is a single decoded record. Fields preserves the decoder's column
// order; Source is the input file the record came from.
type Raw struct {
	Fields []Field
	Source string
}

// Get returns the value of the named field and whether it is present.
func (r Raw) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// EventID parses the record's EventID field.
func (r Raw) EventID() (int, error) {
	value, ok := r.Get(FieldEventID)
	if !ok {
		return 0, fmt.Errorf("record has no %s field", FieldEventID)
	}
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", FieldEventID, value, err)
	}
	return id, nil
}

// timestampLayouts lists the TimeGenerated shapes observed across decoder
// versions, most common first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"01/02/2006 15:04:05",
}

// Timestamp parses the record's TimeGenerated field.
func (r Raw) Timestamp() (time.Time, error) {
	value, ok := r.Get(FieldTimeGenerated)
	if !ok {
		return time.Time{}, fmt.Errorf("record has no %s field", FieldTimeGenerated)
	}
	return ParseTimestamp(value)
}

// ParseTimestamp interprets a decoder timestamp value.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
