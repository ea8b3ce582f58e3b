package analysis

import (
	"errors"
	"fmt"

	"github.com/relieftools/surveygrid/internal/question"
)

var (
	// ErrUnknownKind reports a kind with no registered analyzer.
	ErrUnknownKind = errors.New("analysis: unknown question kind")
	// ErrNoChart reports a kind that never produces chart output.
	ErrNoChart = errors.New("analysis: no chart for question kind")
	// ErrNoData reports an operation that needs at least one valid
	// value.
	ErrNoData = errors.New("analysis: no valid values")
)

func unknownKindError(kind question.Kind) error {
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func noChartError(kind question.Kind) error {
	return fmt.Errorf("%w: %q", ErrNoChart, kind)
}
