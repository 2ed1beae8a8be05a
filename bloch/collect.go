package bloch

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/combin"
	"github.com/hupe1980/trispin/internal/bitset"
	"github.com/hupe1980/trispin/lattice"
)

// MaxUniverse is the largest number of configurations a single scan visits.
const MaxUniverse uint64 = 1 << 34

// Collect builds the Bloch basis of the full configuration space at momentum
// (kx, ky).
func Collect(ctx context.Context, shape lattice.Shape, kx, ky lattice.Momentum, opts ...Option) (*BlochFuncSet, error) {
	return CollectSector(ctx, Sector{Shape: shape, Kx: kx, Ky: ky}, opts...)
}

// CollectSz builds the Bloch basis of the subspace with nup up spins at
// momentum (kx, ky).
func CollectSz(ctx context.Context, shape lattice.Shape, kx, ky lattice.Momentum, nup int, opts ...Option) (*BlochFuncSet, error) {
	f, err := lattice.NewFilling(nup, shape)
	if err != nil {
		return nil, err
	}
	return CollectSector(ctx, Sector{Shape: shape, Kx: kx, Ky: ky, Restricted: true, Nup: f}, opts...)
}

// CollectSector builds the Bloch basis of an arbitrary sector.
func CollectSector(ctx context.Context, sector Sector, opts ...Option) (*BlochFuncSet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := sector.Validate(); err != nil {
		return nil, err
	}

	u, err := newUniverse(sector, o)
	if err != nil {
		return nil, err
	}
	defer u.release()

	sieveBytes := int64(bitset.Bytes(u.Len()))
	if err := o.rc.TryAcquireMemory(sieveBytes); err != nil {
		return nil, fmt.Errorf("%w: sieve of %d bytes: %w", ErrUniverseTooLarge, sieveBytes, err)
	}
	defer o.rc.ReleaseMemory(sieveBytes)

	start := time.Now()
	s := &scanner{
		sector: sector,
		u:      u,
		sieve:  bitset.New(u.Len()),
		phases: phaseTable(sector),
	}

	results, err := s.run(ctx, o)
	if err != nil {
		return nil, err
	}

	stats := Stats{Scanned: u.Len()}
	discarded := roaring64.New()
	var funcs []*BlochFunc
	for _, r := range results {
		funcs = append(funcs, r.funcs...)
		discarded.Or(r.discarded)
		stats.add(r.stats)
	}
	set := newSet(sector, funcs, discarded, stats)

	o.logger.Debug("bloch scan complete",
		"sector", sector.String(),
		"scanned", stats.Scanned,
		"orbits", stats.Orbits,
		"kept", stats.Kept,
		"vanished", stats.Vanished,
		"workers", o.workers,
		"duration", time.Since(start),
	)
	return set, nil
}

type scanUniverse struct {
	universe
	release func()
}

func newUniverse(sector Sector, o options) (scanUniverse, error) {
	n := sector.Shape.Sites()
	noop := func() {}

	if !sector.Restricted {
		if n >= 64 || uint64(1)<<n > MaxUniverse {
			size := uint64(math.MaxUint64)
			if n < 64 {
				size = uint64(1) << n
			}
			return scanUniverse{}, &ErrUniverseSize{Size: size, Max: MaxUniverse}
		}
		return scanUniverse{universe: fullSpace{size: uint64(1) << n}, release: noop}, nil
	}

	nup := sector.Nup.Int()
	size, err := combin.ChooseInt(n, nup)
	if err != nil || uint64(size) > MaxUniverse {
		return scanUniverse{}, &ErrUniverseSize{Size: combin.Choose(n, nup).Uint64(), Max: MaxUniverse}
	}

	tableBytes := int64(size) * 8
	if err := o.rc.TryAcquireMemory(tableBytes); err != nil {
		return scanUniverse{}, fmt.Errorf("%w: configuration table of %d bytes: %w", ErrUniverseTooLarge, tableBytes, err)
	}
	table, err := combin.NewTable(n, nup)
	if err != nil {
		o.rc.ReleaseMemory(tableBytes)
		return scanUniverse{}, err
	}
	return scanUniverse{
		universe: szSpace{table: table},
		release:  func() { o.rc.ReleaseMemory(tableBytes) },
	}, nil
}

// phaseTable returns exp(i(2π·i·kx/nx + 2π·j·ky/ny)) indexed by i + nx·j.
func phaseTable(sector Sector) []complex128 {
	nx, ny := sector.Shape.Nx.Int(), sector.Shape.Ny.Int()
	kx, ky := sector.Kx.Int(), sector.Ky.Int()
	out := make([]complex128, 0, nx*ny)
	for j := range ny {
		for i := range nx {
			ang1 := 2 * math.Pi * float64(i*kx) / float64(nx)
			ang2 := 2 * math.Pi * float64(j*ky) / float64(ny)
			out = append(out, cmplx.Rect(1, ang1+ang2))
		}
	}
	return out
}

type scanner struct {
	sector Sector
	u      universe
	sieve  *bitset.BitSet
	phases []complex128
}

type blockResult struct {
	funcs     []*BlochFunc
	discarded *roaring64.Bitmap
	stats     Stats
}

func (s *scanner) run(ctx context.Context, o options) ([]blockResult, error) {
	size := s.u.Len()
	nblocks := (size + o.blockSize - 1) / o.blockSize
	results := make([]blockResult, nblocks)

	if o.workers <= 1 {
		for b := range nblocks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[b] = s.scanBlock(b*o.blockSize, min((b+1)*o.blockSize, size))
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for b := range nblocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			results[b] = s.scanBlock(b*o.blockSize, min((b+1)*o.blockSize, size))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanBlock emits every orbit whose smallest scan index lies in [lo, hi).
// Orbits owned by another block are only marked, never emitted, so the
// result does not depend on scheduling.
func (s *scanner) scanBlock(lo, hi uint64) blockResult {
	res := blockResult{discarded: roaring64.New()}
	members := make([]uint64, 0, len(s.phases))

	for i := lo; i < hi; i++ {
		if s.sieve.Test(i) {
			continue
		}

		lead := s.u.Config(i)
		decs := s.walk(lead)

		members = members[:0]
		owner := i
		for dec := range decs {
			idx := s.u.Index(dec)
			members = append(members, idx)
			owner = min(owner, idx)
		}

		if owner != i {
			for _, idx := range members {
				if idx != owner {
					s.sieve.Set(idx)
				}
			}
			continue
		}
		if s.sieve.TestAndSet(i) {
			continue
		}
		for _, idx := range members {
			s.sieve.Set(idx)
		}

		res.stats.Orbits++
		nrm := norm(decs)
		if nrm > NormThreshold {
			res.funcs = append(res.funcs, &BlochFunc{Lead: lead, Decs: decs, Norm: nrm})
			res.stats.Kept++
			continue
		}
		res.stats.Vanished++
		res.stats.DiscardedConfigs += uint64(len(decs))
		for dec := range decs {
			res.discarded.Add(dec.Uint64())
		}
	}
	return res
}

// walk applies every translation T_x^i T_y^j to lead in row-major order and
// sums the phase of each translation onto the configuration it produces.
func (s *scanner) walk(lead basis.BinaryBasis) map[basis.BinaryBasis]complex128 {
	nx, ny := s.sector.Shape.Nx, s.sector.Shape.Ny
	decs := make(map[basis.BinaryBasis]complex128)
	cur := lead
	for j := range ny.Int() {
		for i := range nx.Int() {
			decs[cur] += s.phases[i+nx.Int()*j]
			cur = basis.TranslateX(cur, nx, ny)
		}
		cur = basis.TranslateY(cur, nx, ny)
	}
	return decs
}
