package md

import (
	"fmt"
	"math"
)

// Vectors holds one D-dimensional vector per particle, indexed [particle][axis].
type Vectors [][]float64

// NewVectors allocates an n-by-dims vector set initialized to zero.
func NewVectors(n, dims int) Vectors {
	v := make(Vectors, n)
	for i := range v {
		v[i] = make([]float64, dims)
	}
	return v
}

func (v Vectors) Clone() Vectors {
	c := make(Vectors, len(v))
	for i := range v {
		c[i] = make([]float64, len(v[i]))
		copy(c[i], v[i])
	}
	return c
}

// Dims reports the per-particle dimensionality, 0 for an empty set.
func (v Vectors) Dims() int {
	if len(v) == 0 {
		return 0
	}
	return len(v[0])
}

func (v Vectors) IsValid() bool {
	for i := range v {
		for _, x := range v[i] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// Box defines the simulation domain as (min, max) extents per axis.
type Box [][2]float64

// CubicBox returns a box spanning [0, side) on each of dims axes.
func CubicBox(dims int, side float64) Box {
	b := make(Box, dims)
	for i := range b {
		b[i] = [2]float64{0, side}
	}
	return b
}

func (b Box) Dims() int { return len(b) }

// Lengths returns the extent of each axis.
func (b Box) Lengths() []float64 {
	l := make([]float64, len(b))
	for i, bounds := range b {
		l[i] = bounds[1] - bounds[0]
	}
	return l
}

// Validate checks that the box has at least one axis and min < max everywhere.
func (b Box) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("box has no axes: %w", ErrInvalidConfig)
	}
	for i, bounds := range b {
		if bounds[0] >= bounds[1] {
			return fmt.Errorf("box axis %d: min %g >= max %g: %w", i, bounds[0], bounds[1], ErrInvalidConfig)
		}
	}
	return nil
}
