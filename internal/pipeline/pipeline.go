package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/pm10-etl/internal/domain"
	"github.com/couchcryptid/pm10-etl/internal/observability"
)

// Source lists and opens raw measurement files.
type Source interface {
	// List returns candidate file names in traversal order.
	List(ctx context.Context) ([]string, error)

	// Open opens a file previously returned by List.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// BatchLoader writes the records kept from one source file to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.Record) error
}

// Options selects which files and rows the pipeline keeps.
type Options struct {
	PollutantCode    string
	ValiditySentinel string

	// StrictNames aborts the run on a pollutant file whose name does not
	// follow the naming convention instead of skipping it.
	StrictNames bool
}

// DefaultOptions returns the PM10 settings.
func DefaultOptions() Options {
	return Options{
		PollutantCode:    domain.DefaultPollutantCode,
		ValiditySentinel: domain.DefaultValiditySentinel,
	}
}

// Report tallies what a run did. It never influences output content.
type Report struct {
	FilesSeen                int `json:"files_seen"`
	FilesProcessed           int `json:"files_processed"`
	FilesSkippedPollutant    int `json:"files_skipped_pollutant"`
	FilesSkippedUnrecognized int `json:"files_skipped_unrecognized"`

	RowsKept      int `json:"rows_kept"`
	RowsFiltered  int `json:"rows_filtered"`
	RowsMalformed int `json:"rows_malformed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration is the wall time between start and finish of the run.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Pipeline scans a source, filters rows and hands kept records to a loader.
type Pipeline struct {
	source  Source
	loader  BatchLoader
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options

	mu      sync.Mutex
	last    *Report
	lastErr error
}

// New creates a Pipeline with the given stages and observability.
func New(src Source, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		source:  src,
		loader:  l,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// CheckReadiness returns nil when the most recent run completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.last == nil:
		return errors.New("pipeline has not completed a run yet")
	case p.lastErr != nil:
		return fmt.Errorf("last run failed at %s: %w", p.last.FinishedAt.Format(time.RFC3339), p.lastErr)
	}
	return nil
}

// RunStatus is the outcome of a finished run.
type RunStatus struct {
	Report Report
	Err    error
}

// LastRun returns the outcome of the most recent run. It reports false before
// the first run finishes.
func (p *Pipeline) LastRun() (RunStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return RunStatus{}, false
	}
	return RunStatus{Report: *p.last, Err: p.lastErr}, true
}

func (p *Pipeline) record(report Report, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = &report
	p.lastErr = err
}

// Run performs one sequential pass over the source. Files are handled one at a
// time in the order returned by List. The first I/O error aborts the run; rows
// already handed to the loader stay there.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{StartedAt: clock.Now()}
	p.logger.Info("pipeline started",
		"pollutant_code", p.opts.PollutantCode,
		"validity_sentinel", p.opts.ValiditySentinel,
		"strict_names", p.opts.StrictNames,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.run(ctx, &report)
	report.FinishedAt = clock.Now()
	p.record(report, err)
	if err != nil {
		p.metrics.RunFailures.Inc()
		return report, err
	}

	p.metrics.RunDuration.Observe(report.Duration().Seconds())
	p.metrics.LastSuccess.Set(float64(report.FinishedAt.Unix()))

	p.logger.Info("pipeline finished",
		"files_seen", report.FilesSeen,
		"files_processed", report.FilesProcessed,
		"files_skipped_pollutant", report.FilesSkippedPollutant,
		"files_skipped_unrecognized", report.FilesSkippedUnrecognized,
		"rows_kept", report.RowsKept,
		"rows_filtered", report.RowsFiltered,
		"rows_malformed", report.RowsMalformed,
		"duration", report.Duration(),
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *Report) error {
	names, err := p.source.List(ctx)
	if err != nil {
		return fmt.Errorf("list source files: %w", err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.FilesSeen++

		if !domain.MatchesPollutant(name, p.opts.PollutantCode) {
			p.logger.Debug("skipping file for other pollutant", "file", name)
			p.metrics.Files.WithLabelValues(observability.FileSkippedPollutant).Inc()
			report.FilesSkippedPollutant++
			continue
		}

		parsed, err := domain.ParseSourceName(name)
		if err != nil {
			if p.opts.StrictNames {
				return err
			}
			p.logger.Warn("skipping file with unrecognized name", "file", name, "error", err)
			p.metrics.Files.WithLabelValues(observability.FileSkippedUnrecognized).Inc()
			report.FilesSkippedUnrecognized++
			continue
		}

		if err := p.processFile(ctx, name, parsed.Station, report); err != nil {
			return err
		}
		p.metrics.Files.WithLabelValues(observability.FileProcessed).Inc()
		report.FilesProcessed++
	}
	return nil
}

// processFile filters one source file and loads the kept records as a batch.
func (p *Pipeline) processFile(ctx context.Context, name, station string, report *Report) error {
	rc, err := p.source.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	var batch []domain.Record
	var kept, filtered, malformed int
	err = scanRows(rc, func(fields []string) {
		rec, outcome := domain.FilterRow(fields, station, p.opts.ValiditySentinel)
		switch outcome {
		case domain.RowKept:
			batch = append(batch, rec)
			kept++
		case domain.RowFiltered:
			filtered++
		case domain.RowMalformed:
			malformed++
		}
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}

	p.metrics.Rows.WithLabelValues(domain.RowKept.String()).Add(float64(kept))
	p.metrics.Rows.WithLabelValues(domain.RowFiltered.String()).Add(float64(filtered))
	p.metrics.Rows.WithLabelValues(domain.RowMalformed.String()).Add(float64(malformed))
	report.RowsKept += kept
	report.RowsFiltered += filtered
	report.RowsMalformed += malformed

	if len(batch) > 0 {
		if err := p.loader.LoadBatch(ctx, batch); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		p.metrics.RecordsWritten.Add(float64(len(batch)))
	}

	p.logger.Debug("file processed",
		"file", name,
		"station", station,
		"kept", kept,
		"filtered", filtered,
		"malformed", malformed,
	)
	return nil
}
