package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/pm10-etl/internal/domain"
)

// dateLayouts are the capture date formats seen in ARSO exports, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"02.01.2006 15:04",
	"02.01.2006",
}

// Measurement is a consolidated record with its date and value parsed.
type Measurement struct {
	Time    time.Time
	Station string
	Value   float64
}

// ReadRecords reads a consolidated table. Columns are located by header name.
// Rows with broken quoting or whose date or value does not parse are skipped.
func ReadRecords(r io.Reader) ([]Measurement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateCol, valueCol, stationCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case domain.ColumnDate:
			dateCol = i
		case domain.ColumnValue:
			valueCol = i
		case domain.ColumnStation:
			stationCol = i
		}
	}
	if dateCol < 0 || valueCol < 0 || stationCol < 0 {
		return nil, fmt.Errorf("read header: want columns %v, got %v", domain.Header(), header)
	}
	width := max(dateCol, valueCol, stationCol) + 1

	var out []Measurement
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) < width {
			continue
		}

		ts, ok := parseDate(row[dateCol])
		if !ok {
			continue
		}
		v, ok := parseValue(row[valueCol])
		if !ok {
			continue
		}
		out = append(out, Measurement{
			Time:    ts,
			Station: strings.TrimSpace(row[stationCol]),
			Value:   v,
		})
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseValue accepts both decimal point and decimal comma.
func parseValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
