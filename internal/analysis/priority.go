package analysis

import "fmt"

// Banding maps a z-score range to a discrete priority level for map
// display. Band index 0 is at or below the first boundary, band index
// len(Boundaries) is above the last; index -1 is reserved for "no
// data". Colors, Icons and Labels are keyed by band index with -1
// holding the no-data entry.
type Banding struct {
	Boundaries []float64
	Colors     map[int]string
	Icons      map[int]string
	Labels     map[int]string
}

// DefaultBoundaries is the half-sigma banding used unless a survey
// configures its own.
var DefaultBoundaries = []float64{-1, -0.5, 0, 0.5, 1}

// StandardBoundaries is the whole-sigma alternative.
var StandardBoundaries = []float64{-2, -1, 0, 1, 2}

// DefaultBanding returns the stock banding: seven levels from No Data
// through Very High with the matching marker colors and icon keys.
func DefaultBanding() Banding {
	return Banding{
		Boundaries: DefaultBoundaries,
		Colors: map[int]string{
			-1: "#888888",
			0:  "#000080",
			1:  "#008000",
			2:  "#FFFF00",
			3:  "#FFA500",
			4:  "#FF0000",
			5:  "#880088",
		},
		Icons: map[int]string{
			-1: "grey",
			0:  "blue",
			1:  "green",
			2:  "yellow",
			3:  "orange",
			4:  "red",
			5:  "purple",
		},
		Labels: map[int]string{
			-1: "No Data",
			0:  "Very Low",
			1:  "Low",
			2:  "Medium Low",
			3:  "Medium High",
			4:  "High",
			5:  "Very High",
		},
	}
}

// Color returns the marker color for a band, the no-data color for an
// unknown band.
func (b Banding) Color(band int) string {
	if c, ok := b.Colors[band]; ok {
		return c
	}
	return b.Colors[-1]
}

// Icon returns the marker icon key for a band.
func (b Banding) Icon(band int) string {
	if ic, ok := b.Icons[band]; ok {
		return ic
	}
	return b.Icons[-1]
}

// Label returns the textual description for a band.
func (b Banding) Label(band int) string {
	if l, ok := b.Labels[band]; ok {
		return l
	}
	return b.Labels[-1]
}

// RangeText renders the value range a band covers, given the absolute
// bounds from NumericAnalysis.PriorityBand. The no-data band has no
// range.
func (b Banding) RangeText(band int, bounds []string) string {
	switch {
	case band <= -1 || len(bounds) == 0:
		return ""
	case band == 0:
		return fmt.Sprintf("At or below %s", bounds[1])
	case band >= len(bounds)-1:
		return fmt.Sprintf("Above %s", bounds[len(bounds)-1])
	default:
		return fmt.Sprintf("%s - %s", bounds[band], bounds[band+1])
	}
}
