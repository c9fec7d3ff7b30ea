// Package integrators provides numerical integration schemes advancing the
// particle state in place.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/langevin/internal/md"
)

// Integrator advances positions and velocities by one timestep, mutating
// both in place. The driver owns the buffers for the whole run.
type Integrator interface {
	Step(pos, vel, force md.Vectors, mass []float64, dt float64) error
	Name() string
}

var integrators = map[string]func() Integrator{
	"euler":  func() Integrator { return &Euler{} },
	"verlet": func() Integrator { return &VelocityVerlet{} },
}

// New returns the integrator registered under name.
func New(name string) (Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		names := make([]string, 0, len(integrators))
		for n := range integrators {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown integrator %q (available: %v): %w", name, names, md.ErrInvalidConfig)
	}
	return fn(), nil
}
