package trispin

import (
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/lattice"
)

// Params selects a symmetry sector.
type Params struct {
	Nx, Ny int
	Kx, Ky int

	// Restricted selects the subspace with exactly Nup up spins.
	Restricted bool
	Nup        int
}

// Sector validates p and returns the corresponding sector.
func (p Params) Sector() (bloch.Sector, error) {
	shape, err := lattice.NewShape(p.Nx, p.Ny)
	if err != nil {
		return bloch.Sector{}, translateError(err)
	}
	kx, err := lattice.NewMomentum(p.Kx, shape.Nx)
	if err != nil {
		return bloch.Sector{}, translateError(err)
	}
	ky, err := lattice.NewMomentum(p.Ky, shape.Ny)
	if err != nil {
		return bloch.Sector{}, translateError(err)
	}

	sector := bloch.Sector{Shape: shape, Kx: kx, Ky: ky, Restricted: p.Restricted}
	if p.Restricted {
		if sector.Nup, err = lattice.NewFilling(p.Nup, shape); err != nil {
			return bloch.Sector{}, translateError(err)
		}
	}
	return sector, nil
}

func (p Params) String() string {
	s, err := p.Sector()
	if err != nil {
		return "invalid"
	}
	return s.String()
}
