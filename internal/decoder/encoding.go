package decoder

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var encodingAttr = regexp.MustCompile(`(?i)encoding="([^"]+)"`)

// decodeText converts raw decoder output to UTF-8. A byte-order mark wins;
// otherwise the encoding attribute in the XML declaration is consulted.
// LogParser writes UTF-16LE on most Windows installs but labels it with a
// grab bag of names, so several aliases map to the same decoder.
func decodeText(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, []byte{0xff, 0xfe}):
		return transformBytes(raw, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM))
	case bytes.HasPrefix(raw, []byte{0xfe, 0xff}):
		return transformBytes(raw, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM))
	}

	head := raw
	if len(head) > 200 {
		head = head[:200]
	}
	if m := encodingAttr.FindSubmatch(head); m != nil {
		switch strings.ToLower(string(m[1])) {
		case "iso-10646-ucs-2", "utf-16", "utf-16le", "ucs-2", "unicode":
			return transformBytes(raw, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
		case "utf-16be":
			return transformBytes(raw, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
		}
	}
	return string(raw), nil
}

func transformBytes(raw []byte, enc encoding.Encoding) (string, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode output text: %w", err)
	}
	return string(decoded), nil
}

// passthroughCharset satisfies xml.Decoder.CharsetReader: the input has
// already been converted to UTF-8, whatever the declaration still claims.
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}
