package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/isinglab/internal/sim"
)

// Store persists simulation runs, one directory per run holding
// metadata.json and records.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string    `json:"id"`
	Graph         string    `json:"graph"`
	Nodes         int       `json:"nodes"`
	Edges         int       `json:"edges"`
	Isolated      int       `json:"isolated"`
	Timestamp     time.Time `json:"timestamp"`
	Seed          int64     `json:"seed"`
	J             float64   `json:"j"`
	Sweeps        int       `json:"sweeps"`
	MeasureSweeps int       `json:"measure_sweeps"`
	Temperatures  int       `json:"temperatures"`
}

var recordHeader = []string{"temperature", "energy", "abs_magnetization", "mean_spin"}

// Save writes one run and returns its ID.
func (s *Store) Save(graphDesc string, nodes, edges int, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", graphDesc, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Graph:         graphDesc,
		Nodes:         nodes,
		Edges:         edges,
		Isolated:      result.Isolated,
		Timestamp:     time.Now(),
		Seed:          cfg.Seed,
		J:             cfg.J,
		Sweeps:        cfg.Sweeps,
		MeasureSweeps: cfg.MeasureSweeps,
		Temperatures:  len(result.Records),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "records.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(recordHeader); err != nil {
		return "", err
	}
	for _, r := range result.Records {
		row := []string{
			strconv.FormatFloat(r.Temperature, 'f', 6, 64),
			strconv.FormatFloat(r.Energy, 'f', 6, 64),
			strconv.FormatFloat(r.AbsMagnetization, 'f', 6, 64),
			strconv.FormatFloat(r.MeanSpin, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRecords reads back the per-temperature records of a saved run.
func (s *Store) LoadRecords(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "records.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []sim.Record{}, nil
	}

	records := make([]sim.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		records = append(records, sim.Record{
			Temperature:      vals[0],
			Energy:           vals[1],
			AbsMagnetization: vals[2],
			MeanSpin:         vals[3],
		})
	}
	return records, nil
}
