// Package boundary implements the domain boundary conditions applied after
// each integration step.
package boundary

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/langevin/internal/md"
)

// Condition corrects out-of-bounds positions and velocities in place.
// Implementations act independently per axis and must keep the two vector
// sets consistent with each other.
type Condition interface {
	Apply(pos, vel md.Vectors)
	Name() string
}

var conditions = map[string]func(md.Box) Condition{
	"reflective": func(b md.Box) Condition { return &Reflective{box: b} },
	"periodic":   func(b md.Box) Condition { return &Periodic{box: b} },
}

// New returns the boundary condition registered under name.
func New(name string, box md.Box) (Condition, error) {
	fn, ok := conditions[name]
	if !ok {
		names := make([]string, 0, len(conditions))
		for n := range conditions {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown boundary type %q (available: %v): %w", name, names, md.ErrInvalidConfig)
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return fn(box), nil
}

// Reflective bounces particles off the walls: the position is clamped to the
// bound and the velocity component perpendicular to the wall is forced back
// into the box. The lower bound is checked first, so a position sitting
// exactly on a bound resolves to the lower branch.
type Reflective struct {
	box md.Box
}

func (r *Reflective) Name() string { return "reflective" }

func (r *Reflective) Apply(pos, vel md.Vectors) {
	for i := range pos {
		for k, bounds := range r.box {
			if pos[i][k] <= bounds[0] {
				pos[i][k] = bounds[0]
				vel[i][k] = math.Abs(vel[i][k])
			} else if pos[i][k] >= bounds[1] {
				pos[i][k] = bounds[1]
				vel[i][k] = -math.Abs(vel[i][k])
			}
		}
	}
}

// Periodic wraps positions into [min, max) on each axis; particles leaving
// one side reappear on the opposite side. Velocities are untouched.
type Periodic struct {
	box md.Box
}

func (p *Periodic) Name() string { return "periodic" }

func (p *Periodic) Apply(pos, vel md.Vectors) {
	for i := range pos {
		for k, bounds := range p.box {
			length := bounds[1] - bounds[0]
			r := math.Mod(pos[i][k]-bounds[0], length)
			if r < 0 {
				r += length
			}
			pos[i][k] = bounds[0] + r
		}
	}
}
