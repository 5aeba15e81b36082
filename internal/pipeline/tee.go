package pipeline

import (
	"context"

	"github.com/couchcryptid/pm10-etl/internal/domain"
)

type tee []BatchLoader

// Tee returns a BatchLoader that hands each batch to every loader in order,
// stopping at the first error.
func Tee(loaders ...BatchLoader) BatchLoader {
	return tee(loaders)
}

func (t tee) LoadBatch(ctx context.Context, records []domain.Record) error {
	for _, l := range t {
		if err := l.LoadBatch(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
