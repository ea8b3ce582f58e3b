package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBandingLookups(t *testing.T) {
	b := DefaultBanding()

	require.Equal(t, "#888888", b.Color(-1))
	require.Equal(t, "#880088", b.Color(5))
	require.Equal(t, "grey", b.Icon(-1))
	require.Equal(t, "red", b.Icon(4))
	require.Equal(t, "No Data", b.Label(-1))
	require.Equal(t, "Very High", b.Label(5))

	// Out-of-range bands fall back to the no-data entry.
	require.Equal(t, "#888888", b.Color(99))
	require.Equal(t, "No Data", b.Label(99))
}

func TestStandardBoundaries(t *testing.T) {
	require.Equal(t, []float64{-2, -1, 0, 1, 2}, StandardBoundaries)
	require.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, DefaultBoundaries)
}
