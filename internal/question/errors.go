package question

import (
	"errors"
	"fmt"
)

// Lookup misses and configuration faults are fatal to the operation that
// hit them. Per-answer decode failures are not in this taxonomy: they
// are swallowed at the point of canonicalization.
var (
	ErrUnknownQuestion = errors.New("question: no question with that id")
	ErrUnknownCode     = errors.New("question: no question with that code")
	ErrMissingOptions  = errors.New("question: option list length not set")
	ErrMissingType     = errors.New("question: no Type metadata to delegate to")
	ErrUnknownKind     = errors.New("question: unknown question kind")
)

func unknownKindError(kind Kind) error {
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
