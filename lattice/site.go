package lattice

import (
	"fmt"
	"math"
)

// Site is a lattice coordinate on a given torus. The zero value is not usable;
// obtain sites from Shape.Origin or Shape.SiteAt.
type Site struct {
	X, Y  int
	shape Shape
}

// Origin returns the site (0, 0).
func (s Shape) Origin() Site {
	return Site{shape: s}
}

// SiteAt returns the site with bit index i (x = i mod nx, y = i div nx).
func (s Shape) SiteAt(i int) Site {
	nx := s.Nx.n
	return Site{X: i % nx, Y: i / nx, shape: s}
}

// Index returns the canonical bit index x + nx*y.
func (v Site) Index() int {
	return v.X + v.shape.Nx.n*v.Y
}

// Shape returns the torus the site lives on.
func (v Site) Shape() Shape { return v.shape }

// XHop moves the site by d along a1 with periodic wraparound.
func (v Site) XHop(d int) Site {
	v.X = mod(v.X+d, v.shape.Nx.n)
	return v
}

// YHop moves the site by d along a2 with periodic wraparound.
func (v Site) YHop(d int) Site {
	v.Y = mod(v.Y+d, v.shape.Ny.n)
	return v
}

// Hop moves the site by (dx, dy).
func (v Site) Hop(dx, dy int) Site {
	return v.XHop(dx).YHop(dy)
}

// Next returns the row-major successor, wrapping from the last site to the origin.
func (v Site) Next() Site {
	n := v.XHop(1)
	if n.X == 0 {
		n = n.YHop(1)
	}
	return n
}

// Displacement returns the minimum-image lattice displacement from v to o.
// Components lie in (-n/2, n/2].
func (v Site) Displacement(o Site) (dx, dy int) {
	return minImage(o.X-v.X, v.shape.Nx.n), minImage(o.Y-v.Y, v.shape.Ny.n)
}

// AngleWith returns the real-space angle of the bond from v to o, in radians.
// The displacement is the minimum image, so on a torus side of length 2 the
// direction along that side is ambiguous; prefer Bond.Angle for bonds.
func (v Site) AngleWith(o Site) float64 {
	return angle(v.Displacement(o))
}

// angle returns the real-space angle of the lattice displacement (dx, dy).
func angle(dx, dy int) float64 {
	rx := float64(dx) + float64(dy)/2
	ry := float64(dy) * math.Sqrt(3) / 2
	return math.Atan2(ry, rx)
}

func (v Site) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Forward neighbor vectors of each shell, in lattice coordinates.
var shells = [3][3][2]int{
	{{1, 0}, {0, 1}, {-1, 1}},
	{{1, 1}, {-1, 2}, {-2, 1}},
	{{2, 0}, {0, 2}, {-2, 2}},
}

// Vectors returns the forward displacement vectors of the shell.
func (r Range) Vectors() [3][2]int {
	return shells[r-1]
}

// Neighbors returns the forward half of the neighbor shell r around v.
// If all is true the backward half is appended as well.
func (v Site) Neighbors(r Range, all bool) []Site {
	vecs := r.Vectors()
	out := make([]Site, 0, 6)
	for _, d := range vecs {
		out = append(out, v.Hop(d[0], d[1]))
	}
	if all {
		for _, d := range vecs {
			out = append(out, v.Hop(-d[0], -d[1]))
		}
	}
	return out
}

// NearestNeighbors returns the forward nearest neighbors of v.
func (v Site) NearestNeighbors() []Site { return v.Neighbors(Nearest, false) }

// SecondNeighbors returns the forward second neighbors of v.
func (v Site) SecondNeighbors() []Site { return v.Neighbors(Second, false) }

// ThirdNeighbors returns the forward third neighbors of v.
func (v Site) ThirdNeighbors() []Site { return v.Neighbors(Third, false) }

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

func minImage(d, n int) int {
	d = mod(d, n)
	if 2*d > n {
		d -= n
	}
	return d
}
