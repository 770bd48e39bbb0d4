package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isinglab/internal/analysis"
	"github.com/san-kum/isinglab/internal/config"
	"github.com/san-kum/isinglab/internal/export"
	"github.com/san-kum/isinglab/internal/graph"
	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/sim"
	"github.com/san-kum/isinglab/internal/storage"
	"github.com/san-kum/isinglab/internal/viz"
)

var (
	dataDir string
	// Graph construction
	nodes     int
	prob      float64
	gridW     int
	gridH     int
	edgesFile string
	// Schedule
	tempMin       float64
	tempMax       float64
	tempSteps     int
	explicitTemps []float64
	// Run parameters
	sweeps        int
	measureSweeps int
	coupling      float64
	seed          int64
	workers       int
	// Config file and preset
	configFile string
	preset     string
	// nodes command
	threshold float64
	spinsFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isinglab",
		Short: "Ising model Monte Carlo lab for arbitrary graphs",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isinglab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [graph]",
		Short: "run a temperature sweep",
		Long:  "run a Metropolis temperature sweep on a graph (ring, complete, grid, random, file)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addGraphFlags(runCmd)
	addScheduleFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot observables of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's records as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the magnetization curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			records, err := st.LoadRecords(args[0])
			if err != nil {
				return err
			}
			svg := export.SeriesToSVG(records, func(r sim.Record) float64 { return r.AbsMagnetization }, 640, 320, "#00ff00")
			if svg == "" {
				return fmt.Errorf("not enough records to plot")
			}
			_, err = fmt.Fprintln(os.Stdout, svg)
			return err
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [graph]",
		Short: "list available presets for a graph kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for graph kind: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [graph]",
		Short: "benchmark sweep throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchGraph,
	}
	addGraphFlags(benchCmd)

	liveCmd := &cobra.Command{
		Use:   "live [graph]",
		Short: "run a sweep with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addGraphFlags(liveCmd)
	addScheduleFlags(liveCmd)

	nodesCmd := &cobra.Command{
		Use:   "nodes [graph]",
		Short: "per-node energies and susceptible nodes",
		Args:  cobra.ExactArgs(1),
		RunE:  nodeReport,
	}
	addGraphFlags(nodesCmd)
	nodesCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "susceptibility threshold on |node energy|")
	nodesCmd.Flags().StringVar(&spinsFile, "spins", "", "spin assignment file (id spin per line); random when omitted")
	nodesCmd.Flags().Int64Var(&seed, "seed", 1, "random seed for the default assignment")
	nodesCmd.Flags().Float64Var(&coupling, "j", 1.0, "coupling constant")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd, benchCmd, liveCmd, nodesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "number of nodes (ring, complete, random)")
	cmd.Flags().Float64Var(&prob, "prob", config.DefaultProb, "edge probability (random)")
	cmd.Flags().IntVar(&gridW, "width", 10, "lattice width (grid)")
	cmd.Flags().IntVar(&gridH, "height", 10, "lattice height (grid)")
	cmd.Flags().StringVar(&edgesFile, "edges", "", "edge list file (file)")
}

func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tempMin, "tmin", config.DefaultTempMin, "lowest temperature")
	cmd.Flags().Float64Var(&tempMax, "tmax", config.DefaultTempMax, "highest temperature")
	cmd.Flags().IntVar(&tempSteps, "tsteps", config.DefaultSteps, "number of temperatures")
	cmd.Flags().IntVar(&sweeps, "sweeps", config.DefaultSweeps, "equilibration sweeps per temperature")
	cmd.Flags().IntVar(&measureSweeps, "measure", 0, "measurement sweeps to average over (0 = final state only)")
	cmd.Flags().Float64Var(&coupling, "j", config.DefaultCoupling, "coupling constant")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent temperature runs")
}

// buildGraph constructs the requested topology and a short description used
// as the run ID prefix.
func buildGraph(kind string) (*graph.Graph, string, error) {
	switch kind {
	case "ring":
		return graph.Ring(nodes), fmt.Sprintf("ring_%d", nodes), nil
	case "complete":
		return graph.Complete(nodes), fmt.Sprintf("complete_%d", nodes), nil
	case "grid":
		return graph.Grid(gridW, gridH), fmt.Sprintf("grid_%dx%d", gridW, gridH), nil
	case "random":
		rng := rand.New(rand.NewSource(seed))
		return graph.Random(nodes, prob, rng), fmt.Sprintf("random_%d", nodes), nil
	case "file":
		if edgesFile == "" {
			return nil, "", fmt.Errorf("graph kind file requires --edges")
		}
		g, err := storage.LoadEdgeList(edgesFile)
		if err != nil {
			return nil, "", err
		}
		base := filepath.Base(edgesFile)
		return g, base[:len(base)-len(filepath.Ext(base))], nil
	default:
		return nil, "", fmt.Errorf("unknown graph kind: %s (ring, complete, grid, random, file)", kind)
	}
}

// applyPresetAndConfig resolves preset < config file < explicit flags.
func applyPresetAndConfig(cmd *cobra.Command, kind string) error {
	apply := func(cfg *config.Config) {
		if !cmd.Flags().Changed("nodes") && cfg.Graph.Nodes > 0 {
			nodes = cfg.Graph.Nodes
		}
		if !cmd.Flags().Changed("prob") && cfg.Graph.Prob > 0 {
			prob = cfg.Graph.Prob
		}
		if !cmd.Flags().Changed("width") && cfg.Graph.Width > 0 {
			gridW = cfg.Graph.Width
		}
		if !cmd.Flags().Changed("height") && cfg.Graph.Height > 0 {
			gridH = cfg.Graph.Height
		}
		if !cmd.Flags().Changed("edges") && cfg.Graph.Path != "" {
			edgesFile = cfg.Graph.Path
		}
		if !cmd.Flags().Changed("tmin") {
			tempMin = cfg.Temps.Min
		}
		if !cmd.Flags().Changed("tmax") {
			tempMax = cfg.Temps.Max
		}
		if !cmd.Flags().Changed("tsteps") && cfg.Temps.Steps > 0 {
			tempSteps = cfg.Temps.Steps
		}
		if len(cfg.Temps.Explicit) > 0 &&
			!cmd.Flags().Changed("tmin") && !cmd.Flags().Changed("tmax") && !cmd.Flags().Changed("tsteps") {
			explicitTemps = cfg.Temps.Explicit
		}
		if !cmd.Flags().Changed("sweeps") && cfg.Sweeps > 0 {
			sweeps = cfg.Sweeps
		}
		if !cmd.Flags().Changed("measure") {
			measureSweeps = cfg.MeasureSweeps
		}
		if !cmd.Flags().Changed("j") && cfg.J != 0 {
			coupling = cfg.J
		}
		if !cmd.Flags().Changed("seed") && cfg.Seed != 0 {
			seed = cfg.Seed
		}
		if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
			workers = cfg.Workers
		}
	}

	if preset != "" {
		cfg := config.GetPreset(kind, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		apply(cfg)
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		apply(cfg)
	}
	return nil
}

func schedule() []float64 {
	if tempSteps < 1 {
		tempSteps = 1
	}
	return config.TempConfig{
		Min:      tempMin,
		Max:      tempMax,
		Steps:    tempSteps,
		Explicit: explicitTemps,
	}.Schedule()
}

func simConfig() sim.Config {
	return sim.Config{
		Sweeps:        sweeps,
		MeasureSweeps: measureSweeps,
		J:             coupling,
		Seed:          seed,
		Workers:       workers,
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if err := applyPresetAndConfig(cmd, kind); err != nil {
		return err
	}

	g, desc, err := buildGraph(kind)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simulator, err := sim.New(g)
	if err != nil {
		return err
	}

	temps := schedule()
	cfg := simConfig()

	fmt.Printf("running %s: %d nodes, %d edges, %d temperatures\n", desc, g.Len(), g.NumEdges(), len(temps))

	result, err := simulator.Run(context.Background(), temps, cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(desc, g.Len(), g.NumEdges(), cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	if result.Isolated > 0 {
		fmt.Printf("warning: %d isolated nodes (zero energy, free spins)\n", result.Isolated)
	}

	if len(result.Records) > 1 {
		fmt.Printf("estimated transition: T=%.3f\n", analysis.CriticalTemperature(result.Records))
		s := analysis.Stats(result.Records)
		fmt.Printf("energy/node: mean %.4f (std %.4f)\n", s.MeanEnergy, s.StdEnergy)
		fmt.Printf("|M|: mean %.4f (std %.4f)\n", s.MeanAbsMag, s.StdAbsMag)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRAPH\tNODES\tEDGES\tTEMPS\tSWEEPS\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Graph,
			run.Nodes,
			run.Edges,
			run.Temperatures,
			run.Sweeps,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("graph: %s (%d nodes, %d edges)\n", meta.Graph, meta.Nodes, meta.Edges)
	fmt.Printf("temperatures: %d from %.3f to %.3f\n\n",
		len(records), records[0].Temperature, records[len(records)-1].Temperature)

	series := []struct {
		caption string
		value   func(sim.Record) float64
	}{
		{"energy per node vs temperature", func(r sim.Record) float64 { return r.Energy }},
		{"|M| vs temperature", func(r sim.Record) float64 { return r.AbsMagnetization }},
		{"mean spin vs temperature", func(r sim.Record) float64 { return r.MeanSpin }},
	}
	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(records) > 1 {
		fmt.Printf("estimated transition: T=%.3f\n", analysis.CriticalTemperature(records))
	}
	return nil
}

func benchGraph(cmd *cobra.Command, args []string) error {
	g, desc, err := buildGraph(args[0])
	if err != nil {
		return err
	}

	simulator, err := sim.New(g)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (%d nodes, %d edges)\n\n", desc, g.Len(), g.NumEdges())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPS\tSWEEPS\tTIME\tSWEEPS/SEC")

	for _, nTemps := range []int{2, 5, 10} {
		for _, nSweeps := range []int{50, 200, 500} {
			cfg := sim.Config{Sweeps: nSweeps, Seed: 42}
			temps := sim.Schedule(1.0, 3.0, nTemps)

			start := time.Now()
			if _, err := simulator.Run(context.Background(), temps, cfg); err != nil {
				return err
			}
			elapsed := time.Since(start)

			total := nTemps * nSweeps
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
				nTemps, nSweeps, elapsed, float64(total)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if err := applyPresetAndConfig(cmd, kind); err != nil {
		return err
	}

	g, desc, err := buildGraph(kind)
	if err != nil {
		return err
	}
	simulator, err := sim.New(g)
	if err != nil {
		return err
	}

	return viz.RunLive(simulator, desc, schedule(), simConfig())
}

func nodeReport(cmd *cobra.Command, args []string) error {
	g, desc, err := buildGraph(args[0])
	if err != nil {
		return err
	}

	simulator, err := sim.New(g)
	if err != nil {
		return err
	}

	m := ising.NewModel(simulator.Index(), simulator.Neighbors(), coupling)
	if spinsFile != "" {
		assign, err := storage.LoadSpins(spinsFile)
		if err != nil {
			return err
		}
		if err := m.SetSpins(assign); err != nil {
			return err
		}
	} else {
		m.Reset(rand.New(rand.NewSource(seed)))
	}

	fmt.Printf("%s: %d nodes, total energy %.4f\n\n", desc, g.Len(), m.TotalEnergy())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tSPIN\tDEGREE\tENERGY")
	for slot, ne := range m.NodeEnergies() {
		fmt.Fprintf(w, "%s\t%+d\t%d\t%.4f\n",
			ne.ID, m.Spins().Get(slot), simulator.Neighbors().Degree(slot), ne.Energy)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	weak := analysis.Susceptible(m, threshold)
	fmt.Printf("\nsusceptible nodes (|energy| < %.2f): %d\n", threshold, len(weak))
	for _, ne := range weak {
		fmt.Printf("  %s: %.4f\n", ne.ID, ne.Energy)
	}
	return nil
}
