package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// scanRows reads r as CSV, discards the first record without inspection and
// calls fn for every remaining record. Records are allowed a variable number
// of fields. A syntax error on a record is reported to fn as a nil slice so it
// is counted as malformed; any other read error is returned.
func scanRows(r io.Reader, fn func(fields []string)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if !isParseError(err) {
			return fmt.Errorf("read header: %w", err)
		}
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if isParseError(err) {
				fn(nil)
				continue
			}
			return fmt.Errorf("read row: %w", err)
		}
		fn(fields)
	}
}

func isParseError(err error) bool {
	var pe *csv.ParseError
	return errors.As(err, &pe)
}
