package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/isinglab/internal/sim"
)

const (
	DefaultNodes    = 64
	DefaultProb     = 0.1
	DefaultTempMin  = 0.5
	DefaultTempMax  = 4.0
	DefaultSteps    = 15
	DefaultSweeps   = 200
	DefaultCoupling = 1.0
)

type Config struct {
	Graph         GraphConfig `yaml:"graph"`
	Temps         TempConfig  `yaml:"temps"`
	Sweeps        int         `yaml:"sweeps"`
	MeasureSweeps int         `yaml:"measure_sweeps"`
	J             float64     `yaml:"j"`
	Seed          int64       `yaml:"seed"`
	Workers       int         `yaml:"workers"`
}

type GraphConfig struct {
	// Kind selects the topology: ring, complete, grid, random, or file.
	Kind   string  `yaml:"kind"`
	Nodes  int     `yaml:"nodes"`
	Prob   float64 `yaml:"prob"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	// Path is the edge-list file for kind "file".
	Path string `yaml:"path"`
}

type TempConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
	// Explicit overrides Min/Max/Steps when non-empty.
	Explicit []float64 `yaml:"explicit"`
}

// Schedule resolves the section into a temperature list: Explicit verbatim
// when non-empty, otherwise a linear grid from Min to Max with Steps points.
func (t TempConfig) Schedule() []float64 {
	if len(t.Explicit) > 0 {
		return t.Explicit
	}
	return sim.Schedule(t.Min, t.Max, t.Steps)
}

func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Kind:  "ring",
			Nodes: DefaultNodes,
			Prob:  DefaultProb,
		},
		Temps: TempConfig{
			Min:   DefaultTempMin,
			Max:   DefaultTempMax,
			Steps: DefaultSteps,
		},
		Sweeps: DefaultSweeps,
		J:      DefaultCoupling,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
