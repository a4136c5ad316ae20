package filter

import (
	"fmt"
	"time"

	"evtsift/internal/record"
)

// Spec is the immutable record predicate for one run: an inclusive time
// window plus optional event-ID include/exclude sets. A nil set means the
// corresponding rule is not configured.
type Spec struct {
	Start   time.Time
	End     time.Time
	Include map[int]struct{}
	Exclude map[int]struct{}
}

// NewSpec validates and builds a Spec. The window is inclusive on both ends.
func NewSpec(start, end time.Time, include, exclude []int) (Spec, error) {
	if start.IsZero() || end.IsZero() {
		return Spec{}, fmt.Errorf("time window is required")
	}
	if start.After(end) {
		return Spec{}, fmt.Errorf("window start %s is after end %s", start.Format(time.DateTime), end.Format(time.DateTime))
	}
	return Spec{
		Start:   start,
		End:     end,
		Include: idSet(include),
		Exclude: idSet(exclude),
	}, nil
}

func idSet(ids []int) map[int]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Allow reports whether rec passes the Spec. The returned error marks a
// record that cannot be evaluated (malformed timestamp, or an unparsable
// event ID while an ID rule is configured); callers must drop such records
// and surface the error, never include them.
func (s Spec) Allow(rec record.Raw) (bool, error) {
	ts, err := rec.Timestamp()
	if err != nil {
		return false, err
	}
	if ts.Before(s.Start) || ts.After(s.End) {
		return false, nil
	}

	if s.Include == nil && s.Exclude == nil {
		return true, nil
	}
	id, err := rec.EventID()
	if err != nil {
		return false, err
	}
	// Exclude wins over include.
	if s.Exclude != nil {
		if _, banned := s.Exclude[id]; banned {
			return false, nil
		}
	}
	if s.Include != nil {
		if _, wanted := s.Include[id]; !wanted {
			return false, nil
		}
	}
	return true, nil
}
