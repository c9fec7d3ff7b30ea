package integrators

import "github.com/san-kum/langevin/internal/md"

// Euler is the explicit forward-Euler scheme:
//
//	r(t+dt) = r(t) + v(t)*dt
//	v(t+dt) = v(t) + F(t)/m*dt
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(pos, vel, force md.Vectors, mass []float64, dt float64) error {
	for i := range pos {
		for k := range pos[i] {
			pos[i][k] += vel[i][k] * dt
			vel[i][k] += force[i][k] / mass[i] * dt
		}
	}
	return nil
}
