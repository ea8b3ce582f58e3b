package question

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Stored answers that carry structure are JSON with double quotes
// swapped to single quotes, a legacy of form round-tripping. These
// helpers normalize in both directions.

// Legacy values open strings with u'. The prefix only counts at the
// start of a token; a value ending in the letter u followed by a
// closing quote must stay intact.
var legacyStringOpen = regexp.MustCompile(`(^|[\[{,:]\s*)u'`)

func normalizeQuotes(value string) string {
	value = legacyStringOpen.ReplaceAllString(value, `${1}"`)
	value = strings.ReplaceAll(value, "'", `"`)
	return value
}

// decodeStoredJSON unmarshals a stored answer value after quote
// normalization.
func decodeStoredJSON(value string, v any) error {
	return json.Unmarshal([]byte(normalizeQuotes(value)), v)
}

// encodeStoredJSON marshals v and swaps double quotes back to single
// quotes for storage.
func encodeStoredJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(b), `"`, "'"), nil
}
