package lattice

import "fmt"

// MaxSites is the largest supported number of lattice sites. Configurations
// are stored in 63 usable bits and the power table covers 2^0..2^62.
const MaxSites = 62

// Dim is a validated lattice dimension (number of sites along one axis).
type Dim struct {
	n int
}

// NewDim validates n as a lattice dimension.
func NewDim(n int) (Dim, error) {
	if n <= 0 {
		return Dim{}, &ErrInvalidDim{Value: n}
	}
	if n > MaxSites {
		return Dim{}, &ErrTooManySites{Sites: n, Max: MaxSites}
	}
	return Dim{n: n}, nil
}

// MustDim is like NewDim but panics on invalid input.
func MustDim(n int) Dim {
	d, err := NewDim(n)
	if err != nil {
		panic(err)
	}
	return d
}

// Int returns the raw dimension.
func (d Dim) Int() int { return d.n }

// Valid reports whether d was produced by NewDim.
func (d Dim) Valid() bool { return d.n > 0 }

func (d Dim) String() string { return fmt.Sprintf("%d", d.n) }

// Momentum is a crystal momentum quantum number k in [0, dim).
type Momentum struct {
	k   int
	dim int
}

// NewMomentum validates k against the dimension of its axis.
func NewMomentum(k int, d Dim) (Momentum, error) {
	if !d.Valid() {
		return Momentum{}, &ErrInvalidDim{Value: d.n}
	}
	if k < 0 || k >= d.n {
		return Momentum{}, &ErrMomentumOutOfRange{Value: k, Dim: d.n}
	}
	return Momentum{k: k, dim: d.n}, nil
}

// MustMomentum is like NewMomentum but panics on invalid input.
func MustMomentum(k int, d Dim) Momentum {
	m, err := NewMomentum(k, d)
	if err != nil {
		panic(err)
	}
	return m
}

// Int returns the raw momentum index.
func (m Momentum) Int() int { return m.k }

// Check reports an error if m was not validated against d.
func (m Momentum) Check(d Dim) error {
	if m.dim != d.n || m.k < 0 || m.k >= d.n {
		return &ErrMomentumOutOfRange{Value: m.k, Dim: d.n}
	}
	return nil
}

func (m Momentum) String() string { return fmt.Sprintf("%d", m.k) }

// Shape is a validated nx × ny torus.
type Shape struct {
	Nx Dim
	Ny Dim
}

// NewShape validates both dimensions and the total site count.
func NewShape(nx, ny int) (Shape, error) {
	dx, err := NewDim(nx)
	if err != nil {
		return Shape{}, err
	}
	dy, err := NewDim(ny)
	if err != nil {
		return Shape{}, err
	}
	if nx*ny > MaxSites {
		return Shape{}, &ErrTooManySites{Sites: nx * ny, Max: MaxSites}
	}
	return Shape{Nx: dx, Ny: dy}, nil
}

// MustShape is like NewShape but panics on invalid input.
func MustShape(nx, ny int) Shape {
	s, err := NewShape(nx, ny)
	if err != nil {
		panic(err)
	}
	return s
}

// Sites returns nx*ny.
func (s Shape) Sites() int { return s.Nx.n * s.Ny.n }

// Validate reports an error if s was not produced by NewShape.
func (s Shape) Validate() error {
	if !s.Nx.Valid() {
		return &ErrInvalidDim{Value: s.Nx.n}
	}
	if !s.Ny.Valid() {
		return &ErrInvalidDim{Value: s.Ny.n}
	}
	if s.Sites() > MaxSites {
		return &ErrTooManySites{Sites: s.Sites(), Max: MaxSites}
	}
	return nil
}

func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Nx.n, s.Ny.n) }

// Filling is a validated number of up spins for a fixed-magnetization sector.
type Filling struct {
	nup   int
	sites int
}

// NewFilling validates nup against the site count of s.
func NewFilling(nup int, s Shape) (Filling, error) {
	n := s.Sites()
	if nup < 0 || nup > n {
		return Filling{}, &ErrFillingOutOfRange{Value: nup, Sites: n}
	}
	return Filling{nup: nup, sites: n}, nil
}

// Int returns the number of up spins.
func (f Filling) Int() int { return f.nup }

// Check reports an error if f was not validated against s.
func (f Filling) Check(s Shape) error {
	if f.sites != s.Sites() || f.nup < 0 || f.nup > f.sites {
		return &ErrFillingOutOfRange{Value: f.nup, Sites: s.Sites()}
	}
	return nil
}

// Stride is a validated site-index offset l in [1, sites-1] used by the
// all-sites pair generator.
type Stride struct {
	l int
}

// NewStride validates l for s.
func NewStride(l int, s Shape) (Stride, error) {
	maxL := s.Sites() - 1
	if l < 1 || l > maxL {
		return Stride{}, &ErrInvalidStride{Value: l, Max: maxL}
	}
	return Stride{l: l}, nil
}

// Int returns the raw stride.
func (st Stride) Int() int { return st.l }

// Range selects a neighbor shell.
type Range int

const (
	Nearest Range = 1
	Second  Range = 2
	Third   Range = 3
)

// NewRange validates l as a neighbor range.
func NewRange(l int) (Range, error) {
	switch Range(l) {
	case Nearest, Second, Third:
		return Range(l), nil
	default:
		return 0, &ErrInvalidRange{Value: l}
	}
}
