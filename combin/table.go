package combin

import (
	"github.com/hupe1980/trispin/basis"
)

// Table is the bidirectional index/configuration map of one
// fixed-magnetization subspace.
type Table struct {
	n, nup  int
	configs []basis.BinaryBasis
}

// NewTable materializes SzBasis(n, nup).
func NewTable(n, nup int) (*Table, error) {
	configs, err := SzBasis(n, nup)
	if err != nil {
		return nil, err
	}
	return &Table{n: n, nup: nup, configs: configs}, nil
}

// Len returns C(n, nup).
func (t *Table) Len() int { return len(t.configs) }

// Sites returns n.
func (t *Table) Sites() int { return t.n }

// Nup returns the number of up spins of every configuration in the table.
func (t *Table) Nup() int { return t.nup }

// Config returns the configuration at index i.
func (t *Table) Config(i int) basis.BinaryBasis { return t.configs[i] }

// Configs returns the backing slice. Callers must not modify it.
func (t *Table) Configs() []basis.BinaryBasis { return t.configs }

// Index returns the position of dec, or false if dec is not in the subspace.
func (t *Table) Index(dec basis.BinaryBasis) (int, bool) {
	if dec.OnesCount() != t.nup || dec.Uint64()>>uint(t.n) != 0 {
		return 0, false
	}
	return Rank(dec, t.n), true
}
