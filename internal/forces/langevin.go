// Package forces computes per-particle forces for the simulation step.
package forces

import (
	"math"
	"math/rand"

	"github.com/san-kum/langevin/internal/md"
)

// Langevin generates the thermostat force: a friction term -(m/tau)*v plus
// Gaussian noise whose variance satisfies the fluctuation-dissipation
// relation, so the system equilibrates at the target temperature.
type Langevin struct {
	Temperature    float64 // target temperature, K
	RelaxationTime float64 // tau, seconds
	Dt             float64 // integration timestep, seconds

	rng *rand.Rand
}

// NewLangevin builds a thermostat force model drawing noise from rng.
// The generator is run-scoped; seed it externally for reproducibility.
func NewLangevin(temperature, relaxationTime, dt float64, rng *rand.Rand) *Langevin {
	return &Langevin{
		Temperature:    temperature,
		RelaxationTime: relaxationTime,
		Dt:             dt,
		rng:            rng,
	}
}

// Compute returns the total Langevin force per particle, shaped like vel.
// Noise is drawn independently per particle and per axis on every call.
func (l *Langevin) Compute(mass []float64, vel md.Vectors) md.Vectors {
	force := make(md.Vectors, len(vel))
	for i := range vel {
		// Fluctuation-dissipation: sigma^2 = 2*m*kB*T / (tau*dt)
		sigma := math.Sqrt(2.0 * mass[i] * l.Temperature * md.Boltzmann / (l.RelaxationTime * l.Dt))
		gamma := mass[i] / l.RelaxationTime

		force[i] = make([]float64, len(vel[i]))
		for k := range vel[i] {
			force[i][k] = -gamma*vel[i][k] + sigma*l.rng.NormFloat64()
		}
	}
	return force
}

// LennardJones computes pairwise interaction forces from the 12-6 potential
// V(r) = 4*eps*[(sigma/r)^12 - (sigma/r)^6]. Not implemented; callers get an
// error rather than a silently zero force field.
func LennardJones(pos md.Vectors, epsilon, sigma, cutoff float64) (md.Vectors, error) {
	return nil, md.ErrNotImplemented
}
