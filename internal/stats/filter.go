package stats

import (
	"slices"
	"time"
)

// FilterByDateRange keeps measurements taken within [from, to]. A zero bound
// leaves that end of the range open.
func FilterByDateRange(ms []Measurement, from, to time.Time) []Measurement {
	if from.IsZero() && to.IsZero() {
		return ms
	}
	var out []Measurement
	for _, m := range ms {
		if !from.IsZero() && m.Time.Before(from) {
			continue
		}
		if !to.IsZero() && m.Time.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterByStations keeps measurements from the named stations. An empty list
// keeps every station.
func FilterByStations(ms []Measurement, names []string) []Measurement {
	if len(names) == 0 {
		return ms
	}
	var out []Measurement
	for _, m := range ms {
		if slices.Contains(names, m.Station) {
			out = append(out, m)
		}
	}
	return out
}
