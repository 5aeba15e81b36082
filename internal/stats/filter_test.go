package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2022, 1, d, 12, 0, 0, 0, time.UTC)
}

var sample = []Measurement{
	{Time: day(1), Station: "CE bolnica", Value: 40},
	{Time: day(2), Station: "Koper", Value: 20},
	{Time: day(3), Station: "CE bolnica", Value: 60},
	{Time: day(4), Station: "LJ Bezigrad", Value: 35},
}

func stationsOf(ms []Measurement) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Station)
	}
	return out
}

func TestFilterByDateRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     []string
	}{
		{name: "open both ends", want: []string{"CE bolnica", "Koper", "CE bolnica", "LJ Bezigrad"}},
		{name: "from only", from: day(3), want: []string{"CE bolnica", "LJ Bezigrad"}},
		{name: "to only", to: day(2), want: []string{"CE bolnica", "Koper"}},
		{name: "closed inclusive", from: day(2), to: day(3), want: []string{"Koper", "CE bolnica"}},
		{name: "empty window", from: day(5), to: day(6), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDateRange(sample, tt.from, tt.to)
			assert.Equal(t, tt.want, stationsOf(got))
		})
	}
}

func TestFilterByStations(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{name: "nil keeps all", want: []string{"CE bolnica", "Koper", "CE bolnica", "LJ Bezigrad"}},
		{name: "empty keeps all", names: []string{}, want: []string{"CE bolnica", "Koper", "CE bolnica", "LJ Bezigrad"}},
		{name: "one station", names: []string{"CE bolnica"}, want: []string{"CE bolnica", "CE bolnica"}},
		{name: "two stations", names: []string{"Koper", "LJ Bezigrad"}, want: []string{"Koper", "LJ Bezigrad"}},
		{name: "unknown station", names: []string{"Maribor"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByStations(sample, tt.names)
			assert.Equal(t, tt.want, stationsOf(got))
		})
	}
}
