package ising

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/isinglab/internal/graph"
)

// DefaultCoupling is the default interaction strength J.
const DefaultCoupling = 1.0

// Model is one mutable spin configuration over a shared read-only adjacency.
// Concurrent runs each need their own Model; the Index and Neighbors behind
// it can be shared freely.
type Model struct {
	spins    Spins
	ix       *graph.Index
	nb       *graph.Neighbors
	coupling float64
}

// NewModel builds a model with all spins up. Pass coupling 0 to use
// DefaultCoupling.
func NewModel(ix *graph.Index, nb *graph.Neighbors, coupling float64) *Model {
	if coupling == 0 {
		coupling = DefaultCoupling
	}
	return &Model{
		spins:    NewSpins(ix.Len()),
		ix:       ix,
		nb:       nb,
		coupling: coupling,
	}
}

// Spins exposes the live configuration.
func (m *Model) Spins() Spins { return m.spins }

// Len returns the number of spins.
func (m *Model) Len() int { return len(m.spins) }

// Coupling returns J.
func (m *Model) Coupling() float64 { return m.coupling }

// Reset redraws every spin i.i.d. uniform from {-1,+1}.
func (m *Model) Reset(rng *rand.Rand) { m.spins.Reset(rng) }

// TotalEnergy computes -J * sum over stored edges of s_i*s_j. O(|E|); use
// Delta inside sweeps.
func (m *Model) TotalEnergy() float64 {
	sum := 0
	for _, e := range m.nb.Edges() {
		sum += int(m.spins[e[0]]) * int(m.spins[e[1]])
	}
	return -m.coupling * float64(sum)
}

// Delta returns the total-energy change of flipping slot, without applying
// the flip: 2*J*s_slot*sum of neighbor spins. O(degree). A degree-zero slot
// always yields 0.
func (m *Model) Delta(slot int) float64 {
	sum := 0
	for _, j := range m.nb.Of(slot) {
		sum += int(m.spins[j])
	}
	return 2 * m.coupling * float64(m.spins[slot]) * float64(sum)
}

// Magnetization returns the signed sum of all spins.
func (m *Model) Magnetization() float64 { return m.spins.Magnetization() }

// MeanSpin returns the average spin.
func (m *Model) MeanSpin() float64 { return m.spins.MeanSpin() }

// NodeEnergy is the local energy of one node under the current
// configuration: -J*s_i*sum of neighbor spins.
type NodeEnergy struct {
	ID     string
	Energy float64
}

// NodeEnergies returns the per-node local energies in slot order. The sum
// over nodes double-counts every edge, so it equals twice TotalEnergy.
func (m *Model) NodeEnergies() []NodeEnergy {
	out := make([]NodeEnergy, m.Len())
	for i := range m.spins {
		sum := 0
		for _, j := range m.nb.Of(i) {
			sum += int(m.spins[j])
		}
		out[i] = NodeEnergy{
			ID:     m.ix.Node(i),
			Energy: -m.coupling * float64(m.spins[i]) * float64(sum),
		}
	}
	return out
}

// SetSpins overwrites the configuration from an external assignment, e.g.
// label-derived spins attached by an upstream collaborator. Nodes absent
// from the assignment keep their current spin. Values must be +1 or -1.
func (m *Model) SetSpins(assign map[string]int8) error {
	for id, v := range assign {
		slot, ok := m.ix.Slot(id)
		if !ok {
			return fmt.Errorf("%w: %q", graph.ErrUnknownNode, id)
		}
		if v != 1 && v != -1 {
			return fmt.Errorf("ising: spin for %q must be +1 or -1, got %d", id, v)
		}
		m.spins[slot] = v
	}
	return nil
}
