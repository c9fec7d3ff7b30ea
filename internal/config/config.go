// Package config loads and validates the YAML configuration surface of the
// simulator.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/sim"
)

const (
	DefaultBoundary      = "reflective"
	DefaultIntegrator    = "euler"
	DefaultRadius        = 1e-10
	DefaultDumpFrequency = 100
)

// Config mirrors the YAML file. All physical quantities are SI units; box
// is a list of [min, max] pairs, one per axis.
type Config struct {
	NAtoms          int          `yaml:"natoms"`
	Mass            float64      `yaml:"mass"`
	Box             [][2]float64 `yaml:"box"`
	Temperature     float64      `yaml:"temperature"`
	Dt              float64      `yaml:"dt"`
	RelaxationTime  float64      `yaml:"relaxation_time"`
	NSteps          int          `yaml:"nsteps"`
	BoundaryType    string       `yaml:"boundary_type"`
	Integrator      string       `yaml:"integrator"`
	Radius          float64      `yaml:"radius"`
	OutputFile      string       `yaml:"output_file"`
	DumpFrequency   int          `yaml:"dump_frequency"`
	PlotTemperature bool         `yaml:"plot_temperature"`
	Seed            int64        `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		BoundaryType:    DefaultBoundary,
		Integrator:      DefaultIntegrator,
		Radius:          DefaultRadius,
		DumpFrequency:   DefaultDumpFrequency,
		PlotTemperature: true,
	}
}

// Load reads a YAML file over the defaults. Call Validate before use.
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

// Validate checks the required keys before any simulation state is built.
// YAML zero values are indistinguishable from absent keys, so required
// numeric parameters must be strictly positive (temperature non-negative
// with nsteps present).
func (c *Config) Validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"natoms", c.NAtoms > 0},
		{"mass", c.Mass > 0},
		{"temperature", c.Temperature >= 0},
		{"dt", c.Dt > 0},
		{"relaxation_time", c.RelaxationTime > 0},
		{"nsteps", c.NSteps > 0},
		{"box", len(c.Box) > 0},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("required parameter %q missing or invalid: %w", r.name, md.ErrInvalidConfig)
		}
	}
	return md.Box(c.Box).Validate()
}

// SimConfig converts the file surface into the driver's configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		NAtoms:         c.NAtoms,
		Mass:           c.Mass,
		Box:            md.Box(c.Box),
		Temperature:    c.Temperature,
		Dt:             c.Dt,
		RelaxationTime: c.RelaxationTime,
		Boundary:       c.BoundaryType,
		Integrator:     c.Integrator,
		Radius:         c.Radius,
		Seed:           c.Seed,
	}
}

// RunOptions converts the file surface into the driver's run options.
func (c *Config) RunOptions(verbose bool) sim.RunOptions {
	return sim.RunOptions{
		Steps:         c.NSteps,
		OutputFile:    c.OutputFile,
		DumpFrequency: c.DumpFrequency,
		Verbose:       verbose,
	}
}
