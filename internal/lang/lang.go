// Package lang provides best-effort phrase translation against a flat
// phrase dictionary. Missing or empty entries fall back to the original
// phrase, so callers never need to guard against partial dictionaries.
package lang

// Dict maps a source phrase to its localized form.
type Dict map[string]string

// Translate returns the localized form of phrase, or phrase unchanged
// when the dictionary has no non-empty entry for it.
func Translate(phrase string, dict Dict) string {
	if t, ok := dict[phrase]; ok && t != "" {
		return t
	}
	return phrase
}
