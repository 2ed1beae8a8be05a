package bloch

import (
	"fmt"

	"github.com/hupe1980/trispin/lattice"
)

// Sector identifies one symmetry sector: a torus, a crystal momentum and,
// optionally, a fixed number of up spins.
type Sector struct {
	Shape  lattice.Shape
	Kx, Ky lattice.Momentum

	// Restricted selects the fixed-magnetization subspace with Nup up spins.
	Restricted bool
	Nup        lattice.Filling
}

// Validate checks that every field was validated against Shape.
func (s Sector) Validate() error {
	if err := s.Shape.Validate(); err != nil {
		return err
	}
	if err := s.Kx.Check(s.Shape.Nx); err != nil {
		return err
	}
	if err := s.Ky.Check(s.Shape.Ny); err != nil {
		return err
	}
	if s.Restricted {
		return s.Nup.Check(s.Shape)
	}
	return nil
}

// String returns a stable identifier such as "nx3-ny4-kx1-ky0-nup6".
func (s Sector) String() string {
	id := fmt.Sprintf("nx%d-ny%d-kx%d-ky%d", s.Shape.Nx.Int(), s.Shape.Ny.Int(), s.Kx.Int(), s.Ky.Int())
	if s.Restricted {
		id += fmt.Sprintf("-nup%d", s.Nup.Int())
	}
	return id
}
