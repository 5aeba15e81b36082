// Package stats summarizes a consolidated PM10 table per station.
package stats

import (
	"sort"
	"time"
)

// ExceedanceThreshold is the EU daily limit value for PM10 in µg/m³.
const ExceedanceThreshold = 50.0

// DailyAggregate is the mean of one station's measurements over one calendar day.
type DailyAggregate struct {
	Date    time.Time `json:"date"`
	Station string    `json:"station"`
	Mean    float64   `json:"mean"`
	Count   int       `json:"count"`
}

// StationSummary holds per-station statistics.
type StationSummary struct {
	Station     string    `json:"station"`
	Count       int       `json:"count"`
	Mean        float64   `json:"mean"`
	Max         float64   `json:"max"`
	Latest      float64   `json:"latest"`
	LatestAt    time.Time `json:"latest_at"`
	Exceedances int       `json:"exceedances"`
}

type dayKey struct {
	station string
	day     time.Time
}

// DailyAverages groups measurements by station and calendar day, sorted by
// date and then station.
func DailyAverages(ms []Measurement) []DailyAggregate {
	sums := make(map[dayKey]*DailyAggregate)
	for _, m := range ms {
		y, mo, d := m.Time.Date()
		k := dayKey{station: m.Station, day: time.Date(y, mo, d, 0, 0, 0, 0, m.Time.Location())}
		agg, ok := sums[k]
		if !ok {
			agg = &DailyAggregate{Date: k.day, Station: m.Station}
			sums[k] = agg
		}
		agg.Mean += m.Value
		agg.Count++
	}

	out := make([]DailyAggregate, 0, len(sums))
	for _, agg := range sums {
		agg.Mean /= float64(agg.Count)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Station < out[j].Station
	})
	return out
}

// Summarize computes per-station statistics sorted by station name. With
// daily set, statistics are computed over daily means instead of raw
// measurements, so Count is the number of days and Exceedances the number of
// days above the limit.
func Summarize(ms []Measurement, daily bool) []StationSummary {
	if daily {
		days := DailyAverages(ms)
		ms = make([]Measurement, len(days))
		for i, d := range days {
			ms[i] = Measurement{Time: d.Date, Station: d.Station, Value: d.Mean}
		}
	}

	byStation := make(map[string]*StationSummary)
	for _, m := range ms {
		s, ok := byStation[m.Station]
		if !ok {
			s = &StationSummary{Station: m.Station, Max: m.Value, Latest: m.Value, LatestAt: m.Time}
			byStation[m.Station] = s
		}
		s.Count++
		s.Mean += m.Value
		if m.Value > s.Max {
			s.Max = m.Value
		}
		if !m.Time.Before(s.LatestAt) {
			s.Latest = m.Value
			s.LatestAt = m.Time
		}
		if m.Value > ExceedanceThreshold {
			s.Exceedances++
		}
	}

	out := make([]StationSummary, 0, len(byStation))
	for _, s := range byStation {
		s.Mean /= float64(s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Station < out[j].Station })
	return out
}
