package trispin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/blobstore"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/internal/cache"
	"github.com/hupe1980/trispin/lattice"
	"github.com/hupe1980/trispin/operator"
	"github.com/hupe1980/trispin/sites"
	"github.com/hupe1980/trispin/snapshot"
	"github.com/hupe1980/trispin/sparse"
)

// Term names a Hamiltonian term.
type Term string

const (
	// TermSSZ is Σ Sz·Sz over a neighbor shell.
	TermSSZ Term = "ss_z"
	// TermSSXY is the XY exchange over a neighbor shell.
	TermSSXY Term = "ss_xy"
	// TermSSPPMM is the S+S+ + S-S- term over a neighbor shell.
	TermSSPPMM Term = "ss_ppmm"
	// TermSSPMZ is the S±Sz term over a neighbor shell.
	TermSSPMZ Term = "ss_pmz"
	// TermSSSChi is the scalar chirality over every triangle.
	TermSSSChi Term = "sss_chi"
	// TermAllSSZ is the Sz·Sz correlator at a site index offset.
	TermAllSSZ Term = "all_ss_z"
	// TermAllSSXY is the XY correlator at a site index offset.
	TermAllSSXY Term = "all_ss_xy"
)

// Terms lists every supported term.
var Terms = []Term{TermSSZ, TermSSXY, TermSSPPMM, TermSSPMZ, TermSSSChi, TermAllSSZ, TermAllSSXY}

// ParseTerm validates a term name.
func ParseTerm(s string) (Term, error) {
	for _, t := range Terms {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &ErrUnknownTerm{Term: Term(s)}
}

// Engine builds bases and Hamiltonian terms, caching bases in memory and,
// if configured, in a blob store. It is safe for concurrent use.
type Engine struct {
	opts   options
	sets   *cache.LRU[bloch.Sector, *bloch.BlochFuncSet]
	flight singleflight.Group
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		opts: o,
		sets: cache.NewLRU[bloch.Sector, *bloch.BlochFuncSet](int64(o.cacheSize), nil, nil),
	}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.opts.logger }

// BlochStates returns the basis of the sector selected by p.
func (e *Engine) BlochStates(ctx context.Context, p Params) (*bloch.BlochFuncSet, error) {
	sector, err := p.Sector()
	if err != nil {
		return nil, err
	}
	return e.blochStates(ctx, sector)
}

func (e *Engine) blochStates(ctx context.Context, sector bloch.Sector) (*bloch.BlochFuncSet, error) {
	if set, ok := e.sets.Get(sector); ok {
		e.record(ctx, sector, CacheMemory)
		return set, nil
	}

	v, err, _ := e.flight.Do(sector.String(), func() (any, error) {
		if set, ok := e.sets.Get(sector); ok {
			e.record(ctx, sector, CacheMemory)
			return set, nil
		}
		if set, ok := e.load(ctx, sector); ok {
			e.record(ctx, sector, CacheStore)
			e.sets.Set(sector, set)
			return set, nil
		}
		e.record(ctx, sector, CacheMiss)

		start := time.Now()
		set, err := bloch.CollectSector(ctx, sector,
			bloch.WithWorkers(e.opts.workers),
			bloch.WithResourceController(e.opts.rc),
			bloch.WithLogger(e.opts.logger.Logger),
		)
		elapsed := time.Since(start)
		err = translateError(err)
		e.opts.logger.LogBasis(ctx, sector, set, elapsed, err)
		if err != nil {
			e.opts.metricsCollector.RecordBasis(0, elapsed, err)
			return nil, err
		}
		e.opts.metricsCollector.RecordBasis(set.Len(), elapsed, nil)

		e.save(ctx, set)
		e.sets.Set(sector, set)
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*bloch.BlochFuncSet), nil
}

func (e *Engine) record(ctx context.Context, sector bloch.Sector, tier CacheTier) {
	e.opts.metricsCollector.RecordCache(tier)
	e.opts.logger.LogCache(ctx, sector, tier)
}

func (e *Engine) load(ctx context.Context, sector bloch.Sector) (*bloch.BlochFuncSet, bool) {
	if e.opts.store == nil {
		return nil, false
	}
	name := snapshot.Name(sector)

	data, err := e.opts.store.Get(ctx, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, false
	}
	if err == nil {
		err = e.opts.rc.WaitIO(ctx, len(data))
	}
	var set *bloch.BlochFuncSet
	if err == nil {
		set, err = snapshot.Unmarshal(data)
	}
	if err == nil && set.Sector() != sector {
		err = fmt.Errorf("%w: snapshot holds sector %s", snapshot.ErrCorrupt, set.Sector())
	}
	e.opts.logger.LogSnapshot(ctx, "load", name, err)
	if err != nil {
		return nil, false
	}
	return set, true
}

func (e *Engine) save(ctx context.Context, set *bloch.BlochFuncSet) {
	if e.opts.store == nil {
		return
	}
	name := snapshot.Name(set.Sector())

	data, err := snapshot.Marshal(set,
		snapshot.WithCodec(e.opts.codec),
		snapshot.WithCompression(e.opts.compression),
	)
	if err == nil {
		err = e.opts.rc.WaitIO(ctx, len(data))
	}
	if err == nil {
		err = e.opts.store.Put(ctx, name, data)
	}
	e.opts.logger.LogSnapshot(ctx, "save", name, err)
}

// Build assembles term in the sector selected by p. l is the neighbor shell
// (1..3) for the two-body terms, the site index offset for the all-sites
// correlators, and ignored for the chirality.
func (e *Engine) Build(ctx context.Context, p Params, term Term, l int) (*sparse.CoordMatrix, error) {
	switch term {
	case TermSSZ:
		return e.HSSZ(ctx, p, l)
	case TermSSXY:
		return e.HSSXY(ctx, p, l)
	case TermSSPPMM:
		return e.HSSPPMM(ctx, p, l)
	case TermSSPMZ:
		return e.HSSPMZ(ctx, p, l)
	case TermSSSChi:
		return e.HSSSChi(ctx, p)
	case TermAllSSZ:
		return e.SSZ(ctx, p, l)
	case TermAllSSXY:
		return e.SSXY(ctx, p, l)
	default:
		return nil, &ErrUnknownTerm{Term: term}
	}
}

type pairOp func(*bloch.BlochFuncSet, []basis.BinaryBasis, []basis.BinaryBasis) (*sparse.CoordMatrix, error)

type bondOp func(*bloch.BlochFuncSet, []basis.BinaryBasis, []basis.BinaryBasis, []complex128) (*sparse.CoordMatrix, error)

// unphased adapts an operator without bond phases to a bondOp.
func unphased(op pairOp) bondOp {
	return func(set *bloch.BlochFuncSet, s1, s2 []basis.BinaryBasis, _ []complex128) (*sparse.CoordMatrix, error) {
		return op(set, s1, s2)
	}
}

// HSSZ assembles Σ Sz·Sz over neighbor shell l.
func (e *Engine) HSSZ(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.shellTerm(ctx, p, TermSSZ, l, unphased(operator.SSZ))
}

// HSSXY assembles the XY exchange over neighbor shell l.
func (e *Engine) HSSXY(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.shellTerm(ctx, p, TermSSXY, l, unphased(operator.SSXY))
}

// HSSPPMM assembles the bond-phased S+S+ + S-S- term over neighbor shell l.
// The basis must be unrestricted.
func (e *Engine) HSSPPMM(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.shellTerm(ctx, p, TermSSPPMM, l, operator.SSPPMM)
}

// HSSPMZ assembles the bond-phased S±Sz term over neighbor shell l.
// The basis must be unrestricted.
func (e *Engine) HSSPMZ(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.shellTerm(ctx, p, TermSSPMZ, l, operator.SSPMZ)
}

// HSSSChi assembles the scalar chirality summed over every triangle.
func (e *Engine) HSSSChi(ctx context.Context, p Params) (*sparse.CoordMatrix, error) {
	return e.assemble(ctx, p, TermSSSChi, func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) {
		s1, s2, s3 := sites.TriangularVertSites(set.Sector().Shape)
		return operator.SSSChi(set, s1, s2, s3)
	})
}

// SSZ assembles the Sz·Sz correlator between every site and the site l
// indices ahead.
func (e *Engine) SSZ(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.strideTerm(ctx, p, TermAllSSZ, l, operator.SSZ)
}

// SSXY assembles the XY correlator between every site and the site l
// indices ahead.
func (e *Engine) SSXY(ctx context.Context, p Params, l int) (*sparse.CoordMatrix, error) {
	return e.strideTerm(ctx, p, TermAllSSXY, l, operator.SSXY)
}

func (e *Engine) shellTerm(ctx context.Context, p Params, term Term, l int, op bondOp) (*sparse.CoordMatrix, error) {
	r, err := lattice.NewRange(l)
	if err != nil {
		return nil, translateError(err)
	}
	return e.assemble(ctx, p, term, func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) {
		s1, s2, gamma, err := sites.InteractingBonds(set.Sector().Shape, r)
		if err != nil {
			return nil, err
		}
		return op(set, s1, s2, gamma)
	})
}

func (e *Engine) strideTerm(ctx context.Context, p Params, term Term, l int, op pairOp) (*sparse.CoordMatrix, error) {
	sector, err := p.Sector()
	if err != nil {
		return nil, err
	}
	stride, err := lattice.NewStride(l, sector.Shape)
	if err != nil {
		return nil, translateError(err)
	}
	return e.assemble(ctx, p, term, func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) {
		s1, s2 := sites.AllSites(set.Sector().Shape, stride)
		return op(set, s1, s2)
	})
}

func (e *Engine) assemble(ctx context.Context, p Params, term Term, build func(*bloch.BlochFuncSet) (*sparse.CoordMatrix, error)) (*sparse.CoordMatrix, error) {
	set, err := e.BlochStates(ctx, p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := build(set)
	elapsed := time.Since(start)
	err = translateError(err)

	nnz := 0
	if m != nil {
		nnz = m.Nnz()
	}
	e.opts.metricsCollector.RecordOperator(term, nnz, elapsed, err)
	e.opts.logger.LogOperator(ctx, term, set.Sector(), nnz, elapsed, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}
