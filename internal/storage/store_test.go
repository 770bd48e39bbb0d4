package storage

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/isinglab/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Records: []sim.Record{
			{Temperature: 1.0, Energy: -1.9, AbsMagnetization: 0.95, MeanSpin: -0.95},
			{Temperature: 2.0, Energy: -1.2, AbsMagnetization: 0.40, MeanSpin: 0.40},
		},
		Isolated: 1,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg := sim.Config{Sweeps: 100, Seed: 7, J: 1.0}
	runID, err := st.Save("grid_4x4", 16, 24, cfg, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Graph != "grid_4x4" || meta.Nodes != 16 || meta.Edges != 24 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Seed != 7 || meta.Sweeps != 100 || meta.Isolated != 1 {
		t.Errorf("run config not preserved: %+v", meta)
	}
	if meta.Temperatures != 2 {
		t.Errorf("Temperatures = %d, want 2", meta.Temperatures)
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	want := testResult().Records
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if math.Abs(records[i].Temperature-want[i].Temperature) > 1e-6 ||
			math.Abs(records[i].Energy-want[i].Energy) > 1e-6 ||
			math.Abs(records[i].AbsMagnetization-want[i].AbsMagnetization) > 1e-6 ||
			math.Abs(records[i].MeanSpin-want[i].MeanSpin) > 1e-6 {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestListRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save("ring_8", 8, 8, sim.Config{Sweeps: 10}, testResult()); err != nil {
		t.Fatalf("save: %v", err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := st.Save("ring_8", 8, 8, sim.Config{Sweeps: 10}, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"graph": "ring_8"`, `"records"`, `"abs_magnetization"`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := st.Save("ring_8", 8, 8, sim.Config{Sweeps: 10}, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "temperature,energy,abs_magnetization,mean_spin" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestLoadEdgeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	content := "# comment\na b\nb,c\n\nloner\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadEdgeList(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.Len() != 4 {
		t.Errorf("expected 4 nodes, got %d", g.Len())
	}
	if g.NumEdges() != 2 {
		t.Errorf("expected 2 edges, got %d", g.NumEdges())
	}
	if !g.Has("loner") {
		t.Error("isolated node not registered")
	}
}

func TestLoadEdgeListBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("a b c d\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEdgeList(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestLoadSpins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spins.txt")
	if err := os.WriteFile(path, []byte("a +1\nb -1\nc 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	assign, err := LoadSpins(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(assign) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assign))
	}
	if assign["a"] != 1 || assign["b"] != -1 || assign["c"] != 1 {
		t.Errorf("unexpected assignment %v", assign)
	}
}

func TestLoadSpinsRejectsNonUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spins.txt")
	if err := os.WriteFile(path, []byte("a 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpins(path); err == nil {
		t.Error("expected error for spin outside {-1,+1}")
	}
}
