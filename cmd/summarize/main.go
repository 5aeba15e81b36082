// Command summarize prints per-station PM10 statistics for a consolidated
// table produced by cmd/etl: measurement count, mean, maximum, latest value
// and the number of exceedances of the 50 µg/m³ limit.
//
// Usage:
//
//	go run ./cmd/summarize -in pm10_data.csv -daily -from 2022-01-01 -to 2022-03-31 -station Koper,"CE bolnica"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/pm10-etl/internal/stats"
)

const dateLayout = "2006-01-02"

type options struct {
	in       string
	daily    bool
	from, to time.Time
	stations []string
}

// stationList collects -station values, either repeated or comma-separated.
type stationList []string

func (s *stationList) String() string { return strings.Join(*s, ",") }

func (s *stationList) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*s = append(*s, name)
		}
	}
	return nil
}

func main() {
	var opts options
	var from, to string
	var stations stationList
	flag.StringVar(&opts.in, "in", "pm10_data.csv", "consolidated CSV produced by the etl command")
	flag.BoolVar(&opts.daily, "daily", false, "compute statistics over daily means")
	flag.StringVar(&from, "from", "", "first day to include (YYYY-MM-DD)")
	flag.StringVar(&to, "to", "", "last day to include (YYYY-MM-DD)")
	flag.Var(&stations, "station", "station to include; repeat or comma-separate, default all")
	flag.Parse()

	var err error
	if opts.from, opts.to, err = parseRange(from, to); err != nil {
		log.Fatal(err)
	}
	opts.stations = stations

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// parseRange turns the -from/-to flags into inclusive bounds. The -to day is
// included up to its last instant.
func parseRange(from, to string) (time.Time, time.Time, error) {
	var lo, hi time.Time
	var err error
	if from != "" {
		if lo, err = time.Parse(dateLayout, from); err != nil {
			return lo, hi, fmt.Errorf("parse -from: %w", err)
		}
	}
	if to != "" {
		if hi, err = time.Parse(dateLayout, to); err != nil {
			return lo, hi, fmt.Errorf("parse -to: %w", err)
		}
		hi = hi.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return lo, hi, fmt.Errorf("-to %s is before -from %s", to, from)
	}
	return lo, hi, nil
}

func run(opts options, w io.Writer) error {
	f, err := os.Open(opts.in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ms, err := stats.ReadRecords(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.in, err)
	}
	ms = stats.FilterByDateRange(ms, opts.from, opts.to)
	ms = stats.FilterByStations(ms, opts.stations)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats.Summarize(ms, opts.daily))
}
