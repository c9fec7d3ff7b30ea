// Package md provides core primitives for molecular dynamics simulations.
//
// The package defines the fundamental value types shared by the simulation
// pipeline:
//
//   - [Vectors]: per-particle D-dimensional quantities (positions, velocities, forces)
//   - [Box]: simulation domain extents per axis
//
// along with the physical constants and domain errors used throughout the
// module. All types are plain values owned by the simulation driver; the
// package has no internal state.
package md
