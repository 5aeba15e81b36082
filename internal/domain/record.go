package domain

// Column names of the consolidated table.
const (
	ColumnDate    = "datum_zajema"
	ColumnValue   = "vrednost"
	ColumnStation = "mesto"
)

// DefaultPollutantCode is the ARSO code for PM10.
const DefaultPollutantCode = "18247"

// DefaultValiditySentinel marks a row that passed quality control.
const DefaultValiditySentinel = "1"

// minRowFields is the number of positional fields a data row must carry:
// date, value, validity flag and corrected flag.
const minRowFields = 4

// Header returns the fixed header row of the consolidated table.
func Header() []string {
	return []string{ColumnDate, ColumnValue, ColumnStation}
}

// Record is one row of the consolidated table.
type Record struct {
	Date    string `json:"datum_zajema"`
	Value   string `json:"vrednost"`
	Station string `json:"mesto"`
}

// Fields returns the record in header column order.
func (r Record) Fields() []string {
	return []string{r.Date, r.Value, r.Station}
}

// RowOutcome classifies what happened to a single data row.
type RowOutcome int

const (
	RowKept RowOutcome = iota
	RowFiltered
	RowMalformed
)

func (o RowOutcome) String() string {
	switch o {
	case RowKept:
		return "kept"
	case RowFiltered:
		return "filtered"
	case RowMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}
