package bloch

import (
	"github.com/hupe1980/trispin/basis"
)

// IndexTables returns the index → function and lead → index tables of set.
// indToDec[decToInd[r]].Lead == r for every lead r.
func IndexTables(set *BlochFuncSet) (indToDec []*BlochFunc, decToInd map[basis.BinaryBasis]int) {
	indToDec = make([]*BlochFunc, set.Len())
	decToInd = make(map[basis.BinaryBasis]int, set.Len())
	for i, bf := range set.All() {
		indToDec[i] = bf
		decToInd[bf.Lead] = i
	}
	return indToDec, decToInd
}

// MemberTable maps every configuration of every kept orbit to the index of
// its function in set.
func MemberTable(set *BlochFuncSet) map[basis.BinaryBasis]int32 {
	size := 0
	for _, bf := range set.All() {
		size += len(bf.Decs)
	}
	members := make(map[basis.BinaryBasis]int32, size)
	for i, bf := range set.All() {
		for dec := range bf.Decs {
			members[dec] = int32(i)
		}
	}
	return members
}

// FindLeadingState looks dec up in members and returns the owning function's
// index in set with the conjugated, unit-modulus coefficient of dec. A
// configuration of a vanished orbit, or one outside the sector, reports
// false.
func FindLeadingState(dec basis.BinaryBasis, set *BlochFuncSet, members map[basis.BinaryBasis]int32) (int, complex128, bool) {
	idx, ok := members[dec]
	if !ok {
		return 0, 0, false
	}
	phase, ok := set.At(int(idx)).Phase(dec)
	if !ok {
		return 0, 0, false
	}
	return int(idx), phase, true
}

// Coeff returns the normalization ratio between two connected functions.
func Coeff(orig, cntd *BlochFunc) float64 {
	return cntd.Norm / orig.Norm
}
