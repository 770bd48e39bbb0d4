package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runParallel evaluates temperatures concurrently. Every temperature run
// owns a private model and random stream; the index and adjacency behind
// the simulator are read-only, so no locking is needed. Seeds are keyed by
// schedule index, which keeps output identical to the sequential path.
func (s *Simulator) runParallel(ctx context.Context, temps []float64, cfg Config, records []Record) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, temp := range temps {
		i, temp := i, temp
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			records[i] = s.runTemperature(temp, i, cfg)
			return nil
		})
	}

	return g.Wait()
}
