package question

import (
	"math"
	"strconv"
	"strings"
)

// NumericType metadata:
//
//	Length  input width, default 10
//	Format  "n" integer, "n." float, "n.dd" fixed decimal places
type NumericType struct {
	base
}

func newNumeric(r *Registry) Type {
	t := &NumericType{base: newBase(r, KindNumeric, "Numeric")}
	return t
}

// NumericConfig is the parsed form of the numeric metadata.
type NumericConfig struct {
	Length int
	Format string
}

// Config parses the metadata string map once into named fields with
// defaults.
func (t *NumericType) Config() NumericConfig {
	return NumericConfig{
		Length: intMeta(&t.base, "Length", 10),
		Format: t.Get("Format", "n"),
	}
}

// FormattedAnswer applies the question's Format (or an explicit
// override) to a raw value. Non-numeric input formats as zero.
func (t *NumericType) FormattedAnswer(raw, format string) string {
	if format == "" {
		format = t.Config().Format
	}
	return FormatNumberString(raw, format)
}

// CanonicalizeForStorage persists the formatted value as text.
func (t *NumericType) CanonicalizeForStorage(raw string) (string, error) {
	return t.FormattedAnswer(raw, ""), nil
}

// FormatNumberString parses raw as a float (non-numeric input becomes 0)
// and formats it per format.
func FormatNumberString(raw, format string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		v = 0
	}
	return FormatNumber(v, format)
}

// FormatNumber renders v per the numeric Format convention: no decimal
// point means integer truncation, a bare point means the float as-is,
// and a point with a suffix means rounding to the suffix's decimal
// count ("n.2" and "n.nn" both mean two places).
func FormatNumber(v float64, format string) string {
	_, after, found := strings.Cut(format, ".")
	if !found {
		return strconv.FormatInt(int64(v), 10)
	}
	if after == "" {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	places := decimalPlaces(after)
	scale := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', places, 64)
}

func decimalPlaces(suffix string) int {
	if n, err := strconv.Atoi(suffix); err == nil && n >= 0 {
		return n
	}
	return len(suffix)
}
