package lang

import "testing"

func TestTranslate(t *testing.T) {
	dict := Dict{
		"Yes":     "Oui",
		"No":      "Non",
		"Country": "",
	}
	cases := []struct {
		phrase string
		want   string
	}{
		{"Yes", "Oui"},
		{"No", "Non"},
		{"Country", "Country"},
		{"District", "District"},
	}
	for _, c := range cases {
		if got := Translate(c.phrase, dict); got != c.want {
			t.Errorf("Translate(%q) = %q, want %q", c.phrase, got, c.want)
		}
	}
}

func TestTranslateNilDict(t *testing.T) {
	if got := Translate("anything", nil); got != "anything" {
		t.Errorf("Translate with nil dict = %q, want identity", got)
	}
}
