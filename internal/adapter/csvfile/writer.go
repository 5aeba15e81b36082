package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/pm10-etl/internal/domain"
)

// Writer appends consolidated records to a CSV file.
// It implements pipeline.BatchLoader.
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// Create creates or truncates path and writes the header row.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	w := &Writer{file: f, csv: csv.NewWriter(f)}
	if err := w.csv.Write(domain.Header()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// LoadBatch writes records in order.
func (w *Writer) LoadBatch(_ context.Context, records []domain.Record) error {
	for _, rec := range records {
		if err := w.csv.Write(rec.Fields()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	return errors.Join(w.csv.Error(), w.file.Close())
}
