package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every *BoundsError via errors.Is.
var ErrOutOfBounds = errors.New("buffer: out of bounds")

// BoundsError reports an operation that would cross the write capacity or
// the read limit.
type BoundsError struct {
	Op       string
	Position int
	Size     int
	Bound    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("buffer: %s of %d bytes at position %d exceeds bound %d", e.Op, e.Size, e.Position, e.Bound)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
