// Package lattice describes the finite triangular lattice wrapped on a torus.
//
// It provides the validated scalar parameters used throughout trispin
// (Dim, Momentum, Filling, Stride, Range, Shape) and the coordinate
// geometry consumed by the site generators: bit indices, periodic hops,
// neighbor shells, bond lists and bond angles.
//
// # Geometry
//
// Sites are addressed by integer coordinates (x, y) with 0 <= x < nx and
// 0 <= y < ny. The bit index of a site is x + nx*y, so row y occupies bits
// [nx*y, nx*(y+1)). Real-space positions use the primitive vectors
//
//	a1 = (1, 0)
//	a2 = (1/2, √3/2)
//
// Neighbor shells are returned as "forward" halves so that iterating all
// sites produces every bond from exactly one end.
package lattice
