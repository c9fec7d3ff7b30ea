// Package sim owns the particle state and orchestrates the Langevin
// dynamics stepping loop: force computation, integration, and boundary
// enforcement, with per-step observable recording.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/langevin/internal/analysis"
	"github.com/san-kum/langevin/internal/boundary"
	"github.com/san-kum/langevin/internal/dump"
	"github.com/san-kum/langevin/internal/forces"
	"github.com/san-kum/langevin/internal/integrators"
	"github.com/san-kum/langevin/internal/md"
)

// Simulation holds the full mutable state of one run. It is not safe for
// concurrent use; all mutation happens inside Step and Run.
type Simulation struct {
	cfg Config

	pos    md.Vectors
	vel    md.Vectors
	mass   []float64
	radius []float64

	force    *forces.Langevin
	integ    integrators.Integrator
	boundary boundary.Condition
	rng      *rand.Rand

	traj      *Trajectory
	logger    *slog.Logger
	completed bool
}

// New validates cfg and builds a simulation with randomized initial
// conditions: positions uniform within the box, velocities standard normal
// with the mean removed so net momentum is zero at t=0.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Boundary == "" {
		cfg.Boundary = "reflective"
	}
	if cfg.Integrator == "" {
		cfg.Integrator = "euler"
	}
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}

	bc, err := boundary.New(cfg.Boundary, cfg.Box)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &Simulation{
		cfg:      cfg,
		mass:     make([]float64, cfg.NAtoms),
		radius:   make([]float64, cfg.NAtoms),
		force:    forces.NewLangevin(cfg.Temperature, cfg.RelaxationTime, cfg.Dt, rng),
		integ:    integ,
		boundary: bc,
		rng:      rng,
		traj:     &Trajectory{},
		logger:   slog.Default(),
	}

	// Bulk molar mass to kg per particle.
	perParticle := cfg.Mass / md.Avogadro
	for i := range s.mass {
		s.mass[i] = perParticle
		s.radius[i] = cfg.Radius
	}

	s.initialize()
	return s, nil
}

// SetLogger overrides the progress logger (defaults to slog.Default).
func (s *Simulation) SetLogger(l *slog.Logger) { s.logger = l }

func (s *Simulation) initialize() {
	dims := s.cfg.Box.Dims()
	s.pos = md.NewVectors(s.cfg.NAtoms, dims)
	s.vel = md.NewVectors(s.cfg.NAtoms, dims)

	for i := range s.pos {
		for k, bounds := range s.cfg.Box {
			s.pos[i][k] = bounds[0] + (bounds[1]-bounds[0])*s.rng.Float64()
		}
	}

	mean := make([]float64, dims)
	for i := range s.vel {
		for k := range s.vel[i] {
			s.vel[i][k] = s.rng.NormFloat64()
			mean[k] += s.vel[i][k]
		}
	}
	for k := range mean {
		mean[k] /= float64(s.cfg.NAtoms)
	}
	for i := range s.vel {
		for k := range s.vel[i] {
			s.vel[i][k] -= mean[k]
		}
	}
}

// Step advances the system by one timestep: Langevin force, Euler update,
// boundary correction, in that fixed order.
func (s *Simulation) Step() error {
	f := s.force.Compute(s.mass, s.vel)
	if err := s.integ.Step(s.pos, s.vel, f, s.mass, s.cfg.Dt); err != nil {
		return err
	}
	s.boundary.Apply(s.pos, s.vel)
	return nil
}

// Run executes opts.Steps steps synchronously and returns the completed
// trajectory. After each step the instantaneous temperature is appended to
// the trajectory at time step*dt. When an output file is configured, a
// frame is dumped at every step divisible by the dump frequency (step
// indices are 1-based, so step 0 is never dumped). A canceled context
// aborts the loop. A simulation runs at most once.
func (s *Simulation) Run(ctx context.Context, opts RunOptions) (*Trajectory, error) {
	if s.completed {
		return nil, md.ErrCompleted
	}
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d: %w", opts.Steps, md.ErrInvalidConfig)
	}
	if opts.DumpFrequency <= 0 {
		opts.DumpFrequency = DefaultDumpFrequency
	}

	var writer *dump.Writer
	if opts.OutputFile != "" {
		w, err := dump.NewWriter(opts.OutputFile)
		if err != nil {
			return nil, err
		}
		writer = w
		defer writer.Close()
	}

	// Zero when Steps < 10; the progress log is skipped rather than
	// risking a modulo by zero.
	checkpoint := opts.Steps / 10

	for step := 1; step <= opts.Steps; step++ {
		select {
		case <-ctx.Done():
			s.completed = true
			return s.traj, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			s.completed = true
			return s.traj, fmt.Errorf("step %d: %w", step, err)
		}

		now := float64(step) * s.cfg.Dt
		temp := analysis.Temperature(s.mass, s.vel)
		s.traj.append(now, temp)

		if writer != nil && step%opts.DumpFrequency == 0 {
			if err := writer.WriteFrame(step, s.cfg.Box, s.radius, s.pos, s.vel); err != nil {
				s.completed = true
				return s.traj, fmt.Errorf("step %d: write frame: %w", step, err)
			}
		}

		if opts.Verbose && checkpoint > 0 && step%checkpoint == 0 {
			s.logger.Info("progress",
				"step", step,
				"steps", opts.Steps,
				"temperature_K", temp,
				"time_ps", now/md.Picosecond)
		}
	}

	s.completed = true

	if opts.Verbose {
		s.logger.Info("simulation complete",
			"steps", opts.Steps,
			"mean_temperature_K", s.traj.MeanTemperature())
	}

	return s.traj, nil
}

// Positions returns the live position buffer. The caller must not mutate it.
func (s *Simulation) Positions() md.Vectors { return s.pos }

// Velocities returns the live velocity buffer. The caller must not mutate it.
func (s *Simulation) Velocities() md.Vectors { return s.vel }

// Masses returns the per-particle masses in kg.
func (s *Simulation) Masses() []float64 { return s.mass }

// Trajectory returns the observable record accumulated so far.
func (s *Simulation) Trajectory() *Trajectory { return s.traj }

// Config returns the validated configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }
