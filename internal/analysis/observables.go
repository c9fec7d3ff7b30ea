// Package analysis derives statistical observables from the velocity state:
// instantaneous temperature, kinetic energy, total momentum, and running
// averages over recorded series.
package analysis

import (
	"fmt"

	"github.com/san-kum/langevin/internal/md"
)

// Temperature computes the instantaneous temperature from the equipartition
// theorem, KE = (D*N/2)*kB*T, with the kinetic energy taken in the
// center-of-mass frame so bulk drift does not read as heat.
func Temperature(mass []float64, vel md.Vectors) float64 {
	n := len(vel)
	dims := vel.Dims()
	if n == 0 || dims == 0 {
		return 0
	}

	vcm := make([]float64, dims)
	for i := range vel {
		for k := range vel[i] {
			vcm[k] += vel[i][k]
		}
	}
	for k := range vcm {
		vcm[k] /= float64(n)
	}

	ke := 0.0
	for i := range vel {
		for k := range vel[i] {
			dv := vel[i][k] - vcm[k]
			ke += 0.5 * mass[i] * dv * dv
		}
	}

	return 2.0 * ke / (float64(dims) * float64(n) * md.Boltzmann)
}

// KineticEnergy computes the total kinetic energy in the lab frame, Joules.
func KineticEnergy(mass []float64, vel md.Vectors) float64 {
	ke := 0.0
	for i := range vel {
		for _, v := range vel[i] {
			ke += 0.5 * mass[i] * v * v
		}
	}
	return ke
}

// TotalMomentum computes the momentum vector sum over all particles.
func TotalMomentum(mass []float64, vel md.Vectors) []float64 {
	p := make([]float64, vel.Dims())
	for i := range vel {
		for k := range vel[i] {
			p[k] += mass[i] * vel[i][k]
		}
	}
	return p
}

// RunningAverage computes the trailing sliding-window mean of data. The
// output has length len(data)-window+1.
func RunningAverage(data []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	if window > len(data) {
		return nil, fmt.Errorf("window %d exceeds data length %d", window, len(data))
	}

	out := make([]float64, len(data)-window+1)
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
		}
		if i >= window-1 {
			out[i-window+1] = sum / float64(window)
		}
	}
	return out, nil
}
