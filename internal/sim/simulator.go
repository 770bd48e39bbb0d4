package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/isinglab/internal/graph"
	"github.com/san-kum/isinglab/internal/ising"
)

// Simulator estimates thermodynamic observables of the Ising model on a
// fixed graph across a temperature schedule, using Metropolis dynamics.
// The graph is frozen at construction; Run can be called repeatedly and,
// with Config.Workers > 1, evaluates temperatures concurrently.
type Simulator struct {
	ix *graph.Index
	nb *graph.Neighbors
}

// New freezes the graph into index and adjacency form.
func New(g *graph.Graph) (*Simulator, error) {
	ix, err := graph.BuildIndex(g)
	if err != nil {
		return nil, err
	}
	nb, err := graph.BuildNeighbors(g, ix)
	if err != nil {
		return nil, err
	}
	return &Simulator{ix: ix, nb: nb}, nil
}

// Index exposes the slot mapping, e.g. for labelling per-node output.
func (s *Simulator) Index() *graph.Index { return s.ix }

// Neighbors exposes the frozen adjacency.
func (s *Simulator) Neighbors() *graph.Neighbors { return s.nb }

// Run evaluates every temperature in temps, in order, and returns one
// Record per temperature. Each temperature starts from a fresh random
// configuration; nothing carries over between temperatures, so the schedule
// may be in any order. The whole schedule is validated up front: a
// non-positive or non-finite temperature fails the call before any sweeps
// run, with no partial results. An empty schedule returns an empty result.
func (s *Simulator) Run(ctx context.Context, temps []float64, cfg Config) (*Result, error) {
	if err := s.validate(temps, cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		Records:  make([]Record, len(temps)),
		Isolated: len(s.nb.Isolated()),
	}

	if cfg.Workers > 1 {
		if err := s.runParallel(ctx, temps, cfg, result.Records); err != nil {
			return nil, err
		}
	} else {
		for i, temp := range temps {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			result.Records[i] = s.runTemperature(temp, i, cfg)
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// RunWithCallback is the sequential Run with a per-temperature callback,
// invoked after each record is taken. Returning false stops the schedule
// early with a nil error; use it for interactive front-ends that consume
// records as they arrive.
func (s *Simulator) RunWithCallback(ctx context.Context, temps []float64, cfg Config, callback func(Record) bool) error {
	if err := s.validate(temps, cfg); err != nil {
		return err
	}

	for i, temp := range temps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !callback(s.runTemperature(temp, i, cfg)) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) validate(temps []float64, cfg Config) error {
	if cfg.Sweeps <= 0 {
		return fmt.Errorf("%w: sweeps must be positive, got %d", ErrInvalidConfig, cfg.Sweeps)
	}
	if cfg.MeasureSweeps < 0 {
		return fmt.Errorf("%w: measure sweeps must be non-negative, got %d", ErrInvalidConfig, cfg.MeasureSweeps)
	}
	if math.IsNaN(cfg.J) || math.IsInf(cfg.J, 0) {
		return fmt.Errorf("%w: coupling must be finite, got %f", ErrInvalidConfig, cfg.J)
	}
	for i, t := range temps {
		if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: T=%g at schedule index %d", ErrInvalidTemperature, t, i)
		}
	}
	return nil
}

// runTemperature equilibrates a fresh configuration at temp and extracts
// one record. Each temperature owns its model and its random stream, keyed
// by schedule index, so concurrent execution cannot change results.
func (s *Simulator) runTemperature(temp float64, scheduleIdx int, cfg Config) Record {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(scheduleIdx)))
	m := ising.NewModel(s.ix, s.nb, cfg.J)
	m.Reset(rng)

	for i := 0; i < cfg.Sweeps; i++ {
		s.sweep(m, temp, rng)
	}

	n := float64(m.Len())
	if cfg.MeasureSweeps == 0 {
		// Baseline estimator: single sample from the final configuration.
		mag := m.Magnetization()
		return Record{
			Temperature:      temp,
			Energy:           m.TotalEnergy() / n,
			AbsMagnetization: math.Abs(mag) / n,
			MeanSpin:         mag / n,
		}
	}

	energies := make([]float64, cfg.MeasureSweeps)
	absMags := make([]float64, cfg.MeasureSweeps)
	meanSpins := make([]float64, cfg.MeasureSweeps)
	for i := 0; i < cfg.MeasureSweeps; i++ {
		s.sweep(m, temp, rng)
		mag := m.Magnetization()
		energies[i] = m.TotalEnergy() / n
		absMags[i] = math.Abs(mag) / n
		meanSpins[i] = mag / n
	}
	return Record{
		Temperature:      temp,
		Energy:           stat.Mean(energies, nil),
		AbsMagnetization: stat.Mean(absMags, nil),
		MeanSpin:         stat.Mean(meanSpins, nil),
	}
}

// sweep visits every slot exactly once in ascending order. Accepted flips
// are applied immediately, so later trials in the same sweep see them
// (sequential Glauber-style dynamics). The traversal order is fixed for
// reproducibility; order changes the trajectory, not the equilibrium
// statistics.
func (s *Simulator) sweep(m *ising.Model, temp float64, rng *rand.Rand) {
	n := m.Len()
	for slot := 0; slot < n; slot++ {
		delta := m.Delta(slot)
		if delta <= 0 {
			m.Spins().Flip(slot)
			continue
		}
		// exp(-delta/T) is already in (0,1] here; for very large delta/T it
		// underflows to 0, which is the correct limit.
		if rng.Float64() < math.Exp(-delta/temp) {
			m.Spins().Flip(slot)
		}
	}
}
