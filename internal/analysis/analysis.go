package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/sim"
)

// Summary aggregates observables across a recorded schedule.
type Summary struct {
	MeanEnergy float64
	StdEnergy  float64
	MeanAbsMag float64
	StdAbsMag  float64
}

// Stats summarizes the records of one run.
func Stats(records []sim.Record) Summary {
	energies := make([]float64, len(records))
	mags := make([]float64, len(records))
	for i, r := range records {
		energies[i] = r.Energy
		mags[i] = r.AbsMagnetization
	}
	return Summary{
		MeanEnergy: stat.Mean(energies, nil),
		StdEnergy:  stat.StdDev(energies, nil),
		MeanAbsMag: stat.Mean(mags, nil),
		StdAbsMag:  stat.StdDev(mags, nil),
	}
}

// CriticalTemperature estimates the transition temperature as the midpoint
// of the schedule interval where |M| drops fastest. Records are sorted by
// temperature first, so the schedule may have been run in any order.
// Returns 0 if fewer than two records exist.
func CriticalTemperature(records []sim.Record) float64 {
	if len(records) < 2 {
		return 0
	}
	sorted := make([]sim.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Temperature < sorted[j].Temperature
	})

	best := 0.0
	bestT := sorted[0].Temperature
	for i := 1; i < len(sorted); i++ {
		dT := sorted[i].Temperature - sorted[i-1].Temperature
		if dT == 0 {
			continue
		}
		slope := math.Abs(sorted[i].AbsMagnetization-sorted[i-1].AbsMagnetization) / dT
		if slope > best {
			best = slope
			bestT = (sorted[i].Temperature + sorted[i-1].Temperature) / 2
		}
	}
	return bestT
}

// Susceptible returns the nodes whose local energy is within threshold of
// zero under the model's current configuration. A weakly bound node costs
// little to flip, so these are the sites most likely to change state.
// Output is sorted by |energy| ascending.
func Susceptible(m *ising.Model, threshold float64) []ising.NodeEnergy {
	var out []ising.NodeEnergy
	for _, ne := range m.NodeEnergies() {
		if math.Abs(ne.Energy) < threshold {
			out = append(out, ne)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].Energy) < math.Abs(out[j].Energy)
	})
	return out
}
