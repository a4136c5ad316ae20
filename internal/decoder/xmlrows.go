package decoder

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"evtsift/internal/record"
)

// xmlRow mirrors one <ROW> element: every child element becomes a field,
// in document order, whatever the decoder chose to name it.
type xmlRow struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// parseRows extracts all <ROW> records from decoder XML output. Field order
// within a record follows the document.
func parseRows(text string) ([]record.Raw, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = passthroughCharset

	var records []record.Raw
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read decoder xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "ROW" {
			continue
		}

		var row xmlRow
		if err := dec.DecodeElement(&row, &start); err != nil {
			return nil, fmt.Errorf("decode ROW element: %w", err)
		}
		rec := record.Raw{Fields: make([]record.Field, 0, len(row.Fields))}
		for _, f := range row.Fields {
			rec.Fields = append(rec.Fields, record.Field{
				Name:  f.XMLName.Local,
				Value: strings.TrimSpace(f.Value),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}
