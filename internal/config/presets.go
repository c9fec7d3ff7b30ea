package config

import "github.com/san-kum/langevin/internal/md"

// Presets are ready-to-run gas scenarios keyed by gas then scenario name.
var Presets = map[string]map[string]*Config{
	"hydrogen": {
		"ambient": {
			NAtoms: 1000, Mass: md.HydrogenMass, Radius: md.HydrogenRadius,
			Box:         cubic(3, 1e-8),
			Temperature: 300, Dt: md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 10000,
		},
		"hot": {
			NAtoms: 1000, Mass: md.HydrogenMass, Radius: md.HydrogenRadius,
			Box:         cubic(3, 1e-8),
			Temperature: 1000, Dt: md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 10000,
		},
		"small": {
			NAtoms: 100, Mass: md.HydrogenMass, Radius: md.HydrogenRadius,
			Box:         cubic(3, 1e-8),
			Temperature: 300, Dt: md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 1000,
		},
	},
	"argon": {
		"ambient": {
			NAtoms: 500, Mass: md.ArgonMass, Radius: md.ArgonRadius,
			Box:         cubic(3, 2e-8),
			Temperature: 300, Dt: 2 * md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 10000,
		},
		"cryogenic": {
			NAtoms: 500, Mass: md.ArgonMass, Radius: md.ArgonRadius,
			Box:         cubic(3, 2e-8),
			Temperature: 90, Dt: 2 * md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 10000,
		},
	},
	"neon": {
		"periodic": {
			NAtoms: 500, Mass: md.NeonMass, Radius: md.NeonRadius,
			Box:         cubic(3, 1e-8),
			Temperature: 300, Dt: md.Femtosecond, RelaxationTime: md.Picosecond,
			NSteps: 10000, BoundaryType: "periodic",
		},
	},
}

func cubic(dims int, side float64) [][2]float64 {
	b := make([][2]float64, dims)
	for i := range b {
		b[i] = [2]float64{0, side}
	}
	return b
}

// GetPreset returns the named preset with unset fields filled from defaults,
// or nil if gas or preset is unknown.
func GetPreset(gas, preset string) *Config {
	gasPresets, ok := Presets[gas]
	if !ok {
		return nil
	}
	base, ok := gasPresets[preset]
	if !ok {
		return nil
	}

	cfg := *base
	if cfg.BoundaryType == "" {
		cfg.BoundaryType = DefaultBoundary
	}
	if cfg.Integrator == "" {
		cfg.Integrator = DefaultIntegrator
	}
	if cfg.Radius == 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.DumpFrequency == 0 {
		cfg.DumpFrequency = DefaultDumpFrequency
	}
	return &cfg
}

func ListPresets(gas string) []string {
	gasPresets, ok := Presets[gas]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(gasPresets))
	for name := range gasPresets {
		names = append(names, name)
	}
	return names
}

func ListGases() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
