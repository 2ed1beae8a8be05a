// Package bloch builds momentum-symmetrized bases ("Bloch functions") for
// spin-1/2 configurations on a triangular-lattice torus.
//
// Every configuration of the scan universe is walked through all nx·ny
// lattice translations. The phases exp(i(2π·i·kx/nx + 2π·j·ky/ny)) of the
// translations that land on the same configuration are summed, and the orbit
// is kept if the resulting norm exceeds NormThreshold. The universe is either
// the full 2^(nx·ny) space (Collect) or a fixed-magnetization subspace
// (CollectSz).
//
// The representative (Lead) of an orbit is its first member in scan order.
// For the full space that is the numerically smallest member. For a
// fixed-magnetization subspace the scan order is decreasing, so it is the
// numerically largest member.
//
// Basic usage:
//
//	shape := lattice.MustShape(3, 4)
//	kx := lattice.MustMomentum(1, shape.Nx)
//	ky := lattice.MustMomentum(0, shape.Ny)
//
//	set, err := bloch.CollectSz(ctx, shape, kx, ky, 6, bloch.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	for i, bf := range set.All() {
//	    fmt.Println(i, bf.Lead, bf.Norm)
//	}
package bloch
