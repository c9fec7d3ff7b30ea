package integrators

import "github.com/san-kum/langevin/internal/md"

// VelocityVerlet is a planned second-order scheme:
//
//	r(t+dt) = r(t) + v(t)*dt + 0.5*a(t)*dt^2
//	v(t+dt) = v(t) + 0.5*[a(t) + a(t+dt)]*dt
//
// It needs the force at the updated positions, which the current step
// contract does not provide. Until then the step fails rather than
// approximate with a first-order update.
type VelocityVerlet struct{}

func NewVelocityVerlet() *VelocityVerlet { return &VelocityVerlet{} }

func (v *VelocityVerlet) Name() string { return "verlet" }

func (v *VelocityVerlet) Step(pos, vel, force md.Vectors, mass []float64, dt float64) error {
	return md.ErrNotImplemented
}
