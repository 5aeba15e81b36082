package domain

import "strings"

// FilterRow applies the validity filter to one positional data row.
// Rows with fewer than four fields are malformed; rows whose trimmed validity
// flag differs from sentinel are filtered. Kept rows become a Record with the
// trimmed date and value and the given station.
func FilterRow(fields []string, station, sentinel string) (Record, RowOutcome) {
	if len(fields) < minRowFields {
		return Record{}, RowMalformed
	}
	if strings.TrimSpace(fields[2]) != sentinel {
		return Record{}, RowFiltered
	}
	return Record{
		Date:    strings.TrimSpace(fields[0]),
		Value:   strings.TrimSpace(fields[1]),
		Station: station,
	}, RowKept
}
