package lattice

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel wrapped by every parameter-domain error
// in this package. Use errors.Is(err, ErrInvalidParameter) to classify.
var ErrInvalidParameter = errors.New("invalid lattice parameter")

// ErrInvalidDim indicates a non-positive lattice dimension.
type ErrInvalidDim struct {
	Value int
}

func (e *ErrInvalidDim) Error() string {
	return fmt.Sprintf("invalid lattice dimension: %d", e.Value)
}

func (e *ErrInvalidDim) Unwrap() error { return ErrInvalidParameter }

// ErrTooManySites indicates nx*ny exceeds the representable bit width.
type ErrTooManySites struct {
	Sites int
	Max   int
}

func (e *ErrTooManySites) Error() string {
	return fmt.Sprintf("too many sites: %d exceeds maximum %d", e.Sites, e.Max)
}

func (e *ErrTooManySites) Unwrap() error { return ErrInvalidParameter }

// ErrMomentumOutOfRange indicates a momentum index outside [0, dim).
type ErrMomentumOutOfRange struct {
	Value int
	Dim   int
}

func (e *ErrMomentumOutOfRange) Error() string {
	return fmt.Sprintf("momentum %d out of range [0, %d)", e.Value, e.Dim)
}

func (e *ErrMomentumOutOfRange) Unwrap() error { return ErrInvalidParameter }

// ErrFillingOutOfRange indicates a number of up spins outside [0, sites].
type ErrFillingOutOfRange struct {
	Value int
	Sites int
}

func (e *ErrFillingOutOfRange) Error() string {
	return fmt.Sprintf("filling %d out of range [0, %d]", e.Value, e.Sites)
}

func (e *ErrFillingOutOfRange) Unwrap() error { return ErrInvalidParameter }

// ErrInvalidStride indicates a site stride outside [1, max].
type ErrInvalidStride struct {
	Value int
	Max   int
}

func (e *ErrInvalidStride) Error() string {
	return fmt.Sprintf("invalid stride %d: must be in [1, %d]", e.Value, e.Max)
}

func (e *ErrInvalidStride) Unwrap() error { return ErrInvalidParameter }

// ErrInvalidRange indicates a neighbor range other than 1, 2 or 3.
type ErrInvalidRange struct {
	Value int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid neighbor range %d: must be 1, 2 or 3", e.Value)
}

func (e *ErrInvalidRange) Unwrap() error { return ErrInvalidParameter }
