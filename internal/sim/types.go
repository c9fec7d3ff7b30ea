package sim

import (
	"fmt"

	"github.com/san-kum/langevin/internal/md"
)

// Config holds the physical parameters of a simulation. All quantities are
// SI: mass is the bulk molar mass in kg/mol, times in seconds, lengths in
// meters, temperature in Kelvin.
type Config struct {
	NAtoms         int
	Mass           float64
	Box            md.Box
	Temperature    float64
	Dt             float64
	RelaxationTime float64
	Boundary       string
	Integrator     string
	Radius         float64
	Seed           int64
}

// DefaultRadius is the cosmetic particle radius used when none is given.
const DefaultRadius = 1e-10

func (c Config) Validate() error {
	if c.NAtoms <= 0 {
		return fmt.Errorf("natoms must be positive, got %d: %w", c.NAtoms, md.ErrInvalidConfig)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g: %w", c.Mass, md.ErrInvalidConfig)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature cannot be negative, got %g: %w", c.Temperature, md.ErrInvalidConfig)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", c.Dt, md.ErrInvalidConfig)
	}
	if c.RelaxationTime <= 0 {
		return fmt.Errorf("relaxation_time must be positive, got %g: %w", c.RelaxationTime, md.ErrInvalidConfig)
	}
	return c.Box.Validate()
}

// RunOptions controls a single Run call.
type RunOptions struct {
	Steps         int
	OutputFile    string // LAMMPS dump path; empty disables frame output
	DumpFrequency int    // dump every N steps; <=0 defaults to 100
	Verbose       bool
}

// DefaultDumpFrequency is the frame cadence when RunOptions leaves it unset.
const DefaultDumpFrequency = 100

// Trajectory is the append-only record of per-step observables. It grows by
// one sample per step and is read-only once the run completes.
type Trajectory struct {
	Times        []float64
	Temperatures []float64
}

func (t *Trajectory) Len() int { return len(t.Times) }

func (t *Trajectory) append(time, temperature float64) {
	t.Times = append(t.Times, time)
	t.Temperatures = append(t.Temperatures, temperature)
}

// MeanTemperature averages the recorded temperature samples.
func (t *Trajectory) MeanTemperature() float64 {
	if len(t.Temperatures) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range t.Temperatures {
		sum += v
	}
	return sum / float64(len(t.Temperatures))
}
