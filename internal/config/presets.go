package config

var Presets = map[string]map[string]*Config{
	"grid": {
		"critical": {
			// Brackets the 2D square-lattice transition near T=2.27.
			Graph:  GraphConfig{Kind: "grid", Width: 20, Height: 20},
			Temps:  TempConfig{Min: 1.5, Max: 3.2, Steps: 18},
			Sweeps: 500, MeasureSweeps: 50, J: 1.0,
		},
		"quick": {
			Graph:  GraphConfig{Kind: "grid", Width: 10, Height: 10},
			Temps:  TempConfig{Min: 1.0, Max: 4.0, Steps: 10},
			Sweeps: 200, J: 1.0,
		},
	},
	"ring": {
		"small": {
			Graph:  GraphConfig{Kind: "ring", Nodes: 32},
			Temps:  TempConfig{Min: 0.2, Max: 3.0, Steps: 15},
			Sweeps: 300, J: 1.0,
		},
		"large": {
			Graph:  GraphConfig{Kind: "ring", Nodes: 512},
			Temps:  TempConfig{Min: 0.2, Max: 3.0, Steps: 15},
			Sweeps: 500, MeasureSweeps: 20, J: 1.0,
		},
	},
	"complete": {
		"meanfield": {
			Graph:  GraphConfig{Kind: "complete", Nodes: 50},
			Temps:  TempConfig{Min: 10.0, Max: 80.0, Steps: 15},
			Sweeps: 300, J: 1.0,
		},
	},
	"random": {
		"sparse": {
			Graph:  GraphConfig{Kind: "random", Nodes: 200, Prob: 0.02},
			Temps:  TempConfig{Min: 0.5, Max: 6.0, Steps: 12},
			Sweeps: 400, J: 1.0,
		},
		"dense": {
			Graph:  GraphConfig{Kind: "random", Nodes: 100, Prob: 0.2},
			Temps:  TempConfig{Min: 2.0, Max: 30.0, Steps: 15},
			Sweeps: 400, MeasureSweeps: 20, J: 1.0,
		},
	},
}

func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	return names
}
