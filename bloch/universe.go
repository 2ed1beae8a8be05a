package bloch

import (
	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/combin"
)

// universe is the ordered set of configurations a scan visits.
type universe interface {
	Len() uint64
	Config(i uint64) basis.BinaryBasis
	Index(dec basis.BinaryBasis) uint64
}

// fullSpace visits 0 .. 2^n-1 in increasing order.
type fullSpace struct {
	size uint64
}

func (u fullSpace) Len() uint64                        { return u.size }
func (u fullSpace) Config(i uint64) basis.BinaryBasis  { return basis.New(i) }
func (u fullSpace) Index(dec basis.BinaryBasis) uint64 { return dec.Uint64() }

// szSpace visits a fixed-magnetization subspace in SzBasis order.
type szSpace struct {
	table *combin.Table
}

func (u szSpace) Len() uint64                       { return uint64(u.table.Len()) }
func (u szSpace) Config(i uint64) basis.BinaryBasis { return u.table.Config(int(i)) }
func (u szSpace) Index(dec basis.BinaryBasis) uint64 {
	return uint64(combin.Rank(dec, u.table.Sites()))
}
