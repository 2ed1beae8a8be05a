package trispin

import (
	"errors"
	"fmt"

	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/combin"
	"github.com/hupe1980/trispin/lattice"
	"github.com/hupe1980/trispin/operator"
)

var (
	// ErrInvalidParams is returned when lattice parameters, ranges or strides
	// are out of their domain, or a term is requested on a basis it is not
	// defined for.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrTooLarge is returned when a basis does not fit the configured limits.
	ErrTooLarge = errors.New("basis too large")
)

// ErrUnknownTerm indicates an unsupported Hamiltonian term name.
type ErrUnknownTerm struct {
	Term Term
}

func (e *ErrUnknownTerm) Error() string {
	return fmt.Sprintf("unknown term %q", e.Term)
}

func (e *ErrUnknownTerm) Unwrap() error { return ErrInvalidParams }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lattice.ErrInvalidParameter),
		errors.Is(err, operator.ErrSzBroken),
		errors.Is(err, operator.ErrSiteMismatch):
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	case errors.Is(err, bloch.ErrUniverseTooLarge),
		errors.Is(err, combin.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	return err
}
