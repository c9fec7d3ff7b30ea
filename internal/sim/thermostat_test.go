package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/langevin/internal/analysis"
	"github.com/san-kum/langevin/internal/md"
)

// Hydrogen gas in a 10 nm box: the thermostat should drive the system from
// its near-zero initial temperature to the 300 K setpoint, with no particle
// ever escaping the reflective walls.
var _ = Describe("Langevin thermostat", func() {
	cfg := Config{
		NAtoms:         100,
		Mass:           md.HydrogenMass,
		Box:            md.Box{{0, 1e-8}, {0, 1e-8}, {0, 1e-8}},
		Temperature:    300,
		Dt:             1e-15,
		RelaxationTime: 1e-12,
		Boundary:       "reflective",
		Seed:           1234,
	}

	It("records one sample per step with dt spacing", func() {
		s, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		traj, err := s.Run(context.Background(), RunOptions{Steps: 1000})
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(1000))
		Expect(traj.Times[0]).To(BeNumerically("~", cfg.Dt, cfg.Dt*1e-9))
		Expect(traj.Times[999]).To(BeNumerically("~", 1000*cfg.Dt, cfg.Dt*1e-6))

		for i, p := range s.Positions() {
			for k := range p {
				Expect(p[k]).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<=", 1e-8),
				), "particle %d axis %d", i, k)
			}
		}
	})

	It("equilibrates to the target temperature", func() {
		s, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		// Three relaxation times; equilibrium statistics from the last one.
		traj, err := s.Run(context.Background(), RunOptions{Steps: 3000})
		Expect(err).NotTo(HaveOccurred())

		tail := traj.Temperatures[2000:]
		mean := 0.0
		for _, v := range tail {
			mean += v
		}
		mean /= float64(len(tail))

		// Instantaneous T fluctuates ~sqrt(2/(3N)) relatively; the mean of
		// correlated samples stays well inside 20% of the setpoint.
		Expect(mean).To(BeNumerically("~", 300, 60))
	})

	It("holds net momentum near zero through the run", func() {
		s, err := New(cfg)
		Expect(err).NotTo(HaveOccurred())

		p0 := analysis.TotalMomentum(s.Masses(), s.Velocities())
		for k := range p0 {
			Expect(p0[k]).To(BeNumerically("~", 0, 1e-30))
		}

		_, err = s.Run(context.Background(), RunOptions{Steps: 500})
		Expect(err).NotTo(HaveOccurred())

		// The stochastic force injects momentum, but with zero-mean noise
		// the total stays small against the per-particle thermal scale
		// N*sqrt(m*kB*T).
		thermal := float64(cfg.NAtoms) * thermalMomentum(cfg)
		p := analysis.TotalMomentum(s.Masses(), s.Velocities())
		for k := range p {
			Expect(p[k]).To(BeNumerically("~", 0, thermal))
		}
	})
})

func thermalMomentum(cfg Config) float64 {
	m := cfg.Mass / md.Avogadro
	return math.Sqrt(m * md.Boltzmann * cfg.Temperature)
}
