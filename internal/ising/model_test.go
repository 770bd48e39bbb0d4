package ising

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/isinglab/internal/graph"
)

func buildModel(t *testing.T, g *graph.Graph, coupling float64) *Model {
	t.Helper()
	ix, err := graph.BuildIndex(g)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	nb, err := graph.BuildNeighbors(g, ix)
	if err != nil {
		t.Fatalf("neighbors: %v", err)
	}
	return NewModel(ix, nb, coupling)
}

func TestCycleEnergy(t *testing.T) {
	// 4-node cycle, J=1, all spins up: E = -4. Flipping node 0 costs +4 and
	// brings the total to 0.
	m := buildModel(t, graph.Ring(4), 1.0)

	if e := m.TotalEnergy(); e != -4.0 {
		t.Fatalf("TotalEnergy() = %v, want -4", e)
	}

	if d := m.Delta(0); d != 4.0 {
		t.Fatalf("Delta(0) = %v, want 4", d)
	}

	m.Spins().Flip(0)
	if e := m.TotalEnergy(); e != 0.0 {
		t.Fatalf("TotalEnergy() after flip = %v, want 0", e)
	}
}

func TestIsolatedNodeZeroEnergy(t *testing.T) {
	g := graph.New()
	g.AddNode("loner")
	m := buildModel(t, g, 1.0)

	for _, spin := range []int8{1, -1} {
		m.Spins()[0] = spin
		if e := m.TotalEnergy(); e != 0.0 {
			t.Errorf("spin %d: TotalEnergy() = %v, want 0", spin, e)
		}
		if d := m.Delta(0); d != 0.0 {
			t.Errorf("spin %d: Delta(0) = %v, want 0", spin, d)
		}
	}
}

func TestCouplingScalesEnergy(t *testing.T) {
	m := buildModel(t, graph.Ring(4), 2.5)
	if e := m.TotalEnergy(); e != -10.0 {
		t.Errorf("TotalEnergy() = %v, want -10", e)
	}
	if d := m.Delta(0); d != 10.0 {
		t.Errorf("Delta(0) = %v, want 10", d)
	}
}

func TestZeroCouplingDefaults(t *testing.T) {
	m := buildModel(t, graph.Ring(3), 0)
	if m.Coupling() != DefaultCoupling {
		t.Errorf("Coupling() = %v, want %v", m.Coupling(), DefaultCoupling)
	}
}

func TestMultiEdgeDoubleCounts(t *testing.T) {
	// Parallel edges sum per occurrence, replicating raw edge-list energy.
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	m := buildModel(t, g, 1.0)

	if e := m.TotalEnergy(); e != -2.0 {
		t.Errorf("TotalEnergy() = %v, want -2", e)
	}
	if d := m.Delta(0); d != 4.0 {
		t.Errorf("Delta(0) = %v, want 4", d)
	}
}

// Delta must agree with an explicit flip plus full recompute, for arbitrary
// graphs and configurations.
func TestDeltaMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(49)
		g := graph.Random(n, 0.3, rng)
		m := buildModel(t, g, 1.0)
		m.Reset(rng)

		slot := rng.Intn(n)
		want := m.Delta(slot)

		before := m.TotalEnergy()
		m.Spins().Flip(slot)
		after := m.TotalEnergy()
		m.Spins().Flip(slot)

		if math.Abs((after-before)-want) > 1e-9 {
			t.Fatalf("trial %d: Delta(%d) = %v, brute force %v (n=%d)",
				trial, slot, want, after-before, n)
		}
	}
}

func TestNodeEnergies(t *testing.T) {
	m := buildModel(t, graph.Ring(4), 1.0)

	energies := m.NodeEnergies()
	if len(energies) != 4 {
		t.Fatalf("expected 4 node energies, got %d", len(energies))
	}

	// All spins up on a cycle: each node sees two aligned neighbors.
	sum := 0.0
	for _, ne := range energies {
		if ne.Energy != -2.0 {
			t.Errorf("node %s: energy %v, want -2", ne.ID, ne.Energy)
		}
		sum += ne.Energy
	}

	// Per-node energies double-count edges.
	if sum != 2*m.TotalEnergy() {
		t.Errorf("node energy sum %v, want %v", sum, 2*m.TotalEnergy())
	}
}

func TestSetSpins(t *testing.T) {
	m := buildModel(t, graph.Ring(3), 1.0)

	if err := m.SetSpins(map[string]int8{"0": -1, "2": -1}); err != nil {
		t.Fatalf("SetSpins: %v", err)
	}
	if m.Spins()[0] != -1 || m.Spins()[1] != 1 || m.Spins()[2] != -1 {
		t.Errorf("unexpected configuration %v", m.Spins())
	}

	if err := m.SetSpins(map[string]int8{"ghost": 1}); err == nil {
		t.Error("expected error for unknown node")
	}
	if err := m.SetSpins(map[string]int8{"0": 0}); err == nil {
		t.Error("expected error for non-unit spin")
	}
}
