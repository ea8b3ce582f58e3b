package matrix

import (
	"errors"
	"fmt"
)

// ErrPositionConflict is returned when an element is added at a position
// that already holds a primary element. A layout pass must not continue
// after this error; the matrix is in an undefined state.
var ErrPositionConflict = errors.New("matrix: position already occupied")

func conflictError(pos string, have, adding *Element) error {
	return fmt.Errorf("%w: %s holds %q, adding %q", ErrPositionConflict, pos, have.Text, adding.Text)
}
