package sim

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/langevin/internal/md"
)

func testConfig() Config {
	return Config{
		NAtoms:         20,
		Mass:           md.HydrogenMass,
		Box:            md.CubicBox(3, 1e-8),
		Temperature:    300,
		Dt:             1e-15,
		RelaxationTime: 1e-12,
		Seed:           7,
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero natoms", func(c *Config) { c.NAtoms = 0 }},
		{"negative natoms", func(c *Config) { c.NAtoms = -5 }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero relaxation time", func(c *Config) { c.RelaxationTime = 0 }},
		{"empty box", func(c *Config) { c.Box = nil }},
		{"inverted box", func(c *Config) { c.Box = md.Box{{1, 0}, {0, 1}, {0, 1}} }},
		{"unknown boundary", func(c *Config) { c.Boundary = "absorbing" }},
		{"unknown integrator", func(c *Config) { c.Integrator = "rk4" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNew_Initialization(t *testing.T) {
	cfg := testConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pos := s.Positions()
	if len(pos) != cfg.NAtoms || pos.Dims() != 3 {
		t.Fatalf("positions shaped %dx%d, want %dx3", len(pos), pos.Dims(), cfg.NAtoms)
	}
	for i := range pos {
		for k, bounds := range cfg.Box {
			if pos[i][k] < bounds[0] || pos[i][k] > bounds[1] {
				t.Errorf("particle %d axis %d starts outside box: %g", i, k, pos[i][k])
			}
		}
	}

	// COM removal: zero net velocity at t=0.
	for k := 0; k < 3; k++ {
		sum := 0.0
		for i := range s.Velocities() {
			sum += s.Velocities()[i][k]
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("axis %d: net velocity %g, want ~0", k, sum)
		}
	}

	// Molar mass converted to per-particle mass.
	want := cfg.Mass / md.Avogadro
	if got := s.Masses()[0]; math.Abs(got-want)/want > 1e-12 {
		t.Errorf("per-particle mass %g, want %g", got, want)
	}
}

func TestNew_Deterministic(t *testing.T) {
	a, _ := New(testConfig())
	b, _ := New(testConfig())

	for i := range a.Positions() {
		for k := range a.Positions()[i] {
			if a.Positions()[i][k] != b.Positions()[i][k] {
				t.Fatal("same seed produced different initial positions")
			}
		}
	}
}

func TestRun_TrajectoryShape(t *testing.T) {
	s, _ := New(testConfig())

	traj, err := s.Run(context.Background(), RunOptions{Steps: 50})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if traj.Len() != 50 {
		t.Fatalf("trajectory length %d, want 50", traj.Len())
	}
	dt := testConfig().Dt
	for i, tm := range traj.Times {
		want := float64(i+1) * dt
		if math.Abs(tm-want) > dt*1e-9 {
			t.Fatalf("sample %d at t=%g, want %g", i, tm, want)
		}
		if i > 0 && tm <= traj.Times[i-1] {
			t.Fatalf("times not strictly increasing at %d", i)
		}
	}
}

func TestRun_ParticlesStayInBox(t *testing.T) {
	cfg := testConfig()
	s, _ := New(cfg)

	if _, err := s.Run(context.Background(), RunOptions{Steps: 200}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i, p := range s.Positions() {
		for k, bounds := range cfg.Box {
			if p[k] < bounds[0] || p[k] > bounds[1] {
				t.Errorf("particle %d axis %d left box: %g", i, k, p[k])
			}
		}
	}
}

func TestRun_Once(t *testing.T) {
	s, _ := New(testConfig())

	if _, err := s.Run(context.Background(), RunOptions{Steps: 5}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := s.Run(context.Background(), RunOptions{Steps: 5}); !errors.Is(err, md.ErrCompleted) {
		t.Errorf("second Run error = %v, want ErrCompleted", err)
	}
}

func TestRun_InvalidSteps(t *testing.T) {
	s, _ := New(testConfig())
	if _, err := s.Run(context.Background(), RunOptions{Steps: 0}); err == nil {
		t.Error("expected error for zero steps")
	}
}

func TestRun_FewStepsNoCheckpointCrash(t *testing.T) {
	s, _ := New(testConfig())

	// Steps < 10 makes the checkpoint interval zero; verbose runs must
	// skip progress reporting, not divide by it.
	traj, err := s.Run(context.Background(), RunOptions{Steps: 3, Verbose: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if traj.Len() != 3 {
		t.Errorf("trajectory length %d, want 3", traj.Len())
	}
}

func TestRun_ContextCancel(t *testing.T) {
	s, _ := New(testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	traj, err := s.Run(ctx, RunOptions{Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if traj.Len() != 0 {
		t.Errorf("canceled run recorded %d samples", traj.Len())
	}
}

func TestRun_DumpCadence(t *testing.T) {
	cfg := testConfig()
	s, _ := New(cfg)

	out := filepath.Join(t.TempDir(), "traj.dump")
	_, err := s.Run(context.Background(), RunOptions{Steps: 50, OutputFile: out, DumpFrequency: 10})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	frames := strings.Count(string(data), "ITEM: TIMESTEP")
	if frames != 5 {
		t.Errorf("dumped %d frames, want 5", frames)
	}
	if strings.Contains(string(data), "ITEM: TIMESTEP\n0\n") {
		t.Error("step 0 must never be dumped")
	}
}

func TestVerletRun_FailsNotImplemented(t *testing.T) {
	cfg := testConfig()
	cfg.Integrator = "verlet"
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := s.Run(context.Background(), RunOptions{Steps: 5}); !errors.Is(err, md.ErrNotImplemented) {
		t.Errorf("Run error = %v, want ErrNotImplemented", err)
	}
}
