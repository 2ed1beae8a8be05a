package bloch

import (
	"errors"
	"fmt"
)

// ErrUniverseTooLarge is returned when the configuration space cannot be
// scanned within the configured limits.
var ErrUniverseTooLarge = errors.New("configuration space too large")

// ErrSectorMismatch is returned when restoring a set whose functions do not
// belong to the declared sector.
var ErrSectorMismatch = errors.New("bloch function does not match sector")

// ErrUniverseSize reports the size of a rejected configuration space.
type ErrUniverseSize struct {
	Size uint64
	Max  uint64
}

func (e *ErrUniverseSize) Error() string {
	return fmt.Sprintf("configuration space of %d exceeds maximum %d", e.Size, e.Max)
}

func (e *ErrUniverseSize) Unwrap() error { return ErrUniverseTooLarge }
