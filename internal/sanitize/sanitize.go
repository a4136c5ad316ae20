package sanitize

import (
	"errors"
	"strings"
)

// Defaults used when the configuration leaves them unset. The section sign
// survives every code page the decoder emits and never collides with data a
// triage analyst greps for.
const (
	DefaultDelimiter   = ','
	DefaultPlaceholder = '§'
)

// ErrPlaceholderCollision indicates the placeholder equals the delimiter,
// which would make sanitization a no-op.
var ErrPlaceholderCollision = errors.New("placeholder must differ from the CSV delimiter")

// CheckRunes validates a delimiter/placeholder pair.
func CheckRunes(delimiter, placeholder rune) error {
	if delimiter == placeholder {
		return ErrPlaceholderCollision
	}
	return nil
}

// Field returns value with every delimiter occurrence replaced by the
// placeholder and every line break flattened to a space. The result contains
// no delimiter and no newline, so re-applying Field yields it unchanged.
func Field(value string, delimiter, placeholder rune) string {
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	skipLF := false
	for _, r := range value {
		switch {
		case r == delimiter:
			b.WriteRune(placeholder)
			skipLF = false
		case r == '\r':
			b.WriteByte(' ')
			skipLF = true
		case r == '\n':
			// \r\n collapses to a single space
			if !skipLF {
				b.WriteByte(' ')
			}
			skipLF = false
		default:
			b.WriteRune(r)
			skipLF = false
		}
	}
	return b.String()
}
