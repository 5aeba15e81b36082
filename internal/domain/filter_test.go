package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRow(t *testing.T) {
	tests := []struct {
		name     string
		fields   []string
		outcome  RowOutcome
		expected Record
	}{
		{
			name:     "valid row kept",
			fields:   []string{"2022-01-01", "15", "1", "1"},
			outcome:  RowKept,
			expected: Record{Date: "2022-01-01", Value: "15", Station: "CE bolnica"},
		},
		{
			name:     "fields trimmed",
			fields:   []string{" 2022-01-01 00:00 ", " 15.3 ", " 1 ", "0"},
			outcome:  RowKept,
			expected: Record{Date: "2022-01-01 00:00", Value: "15.3", Station: "CE bolnica"},
		},
		{
			name:     "trailing fields ignored",
			fields:   []string{"2022-01-01", "15", "1", "1", "x", "y"},
			outcome:  RowKept,
			expected: Record{Date: "2022-01-01", Value: "15", Station: "CE bolnica"},
		},
		{
			name:     "value passed through verbatim",
			fields:   []string{"not a date", "n/a", "1", "1"},
			outcome:  RowKept,
			expected: Record{Date: "not a date", Value: "n/a", Station: "CE bolnica"},
		},
		{name: "invalid flag", fields: []string{"2022-01-02", "20", "0", "1"}, outcome: RowFiltered},
		{name: "flag not exact", fields: []string{"2022-01-02", "20", "1.0", "1"}, outcome: RowFiltered},
		{name: "empty flag", fields: []string{"2022-01-02", "20", "", "1"}, outcome: RowFiltered},
		{name: "two fields", fields: []string{"2022-01-03", "bad"}, outcome: RowMalformed},
		{name: "three fields", fields: []string{"2022-01-03", "12", "1"}, outcome: RowMalformed},
		{name: "no fields", fields: nil, outcome: RowMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, outcome := FilterRow(tt.fields, "CE bolnica", DefaultValiditySentinel)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.expected, rec)
		})
	}
}

func TestFilterRow_CustomSentinel(t *testing.T) {
	_, outcome := FilterRow([]string{"2022-01-01", "15", "1", "1"}, "Koper", "V")
	assert.Equal(t, RowFiltered, outcome)

	rec, outcome := FilterRow([]string{"2022-01-01", "15", "V", "1"}, "Koper", "V")
	assert.Equal(t, RowKept, outcome)
	assert.Equal(t, "Koper", rec.Station)
}

func TestRowOutcomeString(t *testing.T) {
	assert.Equal(t, "kept", RowKept.String())
	assert.Equal(t, "filtered", RowFiltered.String())
	assert.Equal(t, "malformed", RowMalformed.String())
	assert.Equal(t, "unknown", RowOutcome(42).String())
}

func TestHeader(t *testing.T) {
	assert.Equal(t, []string{"datum_zajema", "vrednost", "mesto"}, Header())
	assert.Equal(t, []string{"d", "v", "s"}, Record{Date: "d", Value: "v", Station: "s"}.Fields())
}
