package question

import "strconv"

// StringType is short free text, optionally bounded by a Length
// metadata entry.
type StringType struct {
	base
}

func newString(r *Registry) Type {
	t := &StringType{base: newBase(r, KindString, "Short Text")}
	return t
}

// Length returns the configured input width, or def when unset or
// unparseable.
func (t *StringType) Length(def int) int {
	return intMeta(&t.base, "Length", def)
}

// TextType is long free text. It has no metadata beyond the common
// help message.
type TextType struct {
	base
}

func newText(r *Registry) Type {
	t := &TextType{base: newBase(r, KindText, "Long Text")}
	return t
}

func intMeta(b *base, descriptor string, def int) int {
	raw := b.Get(descriptor, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
