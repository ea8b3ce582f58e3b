package question

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relieftools/surveygrid/internal/matrix"
)

func TestOptionList(t *testing.T) {
	reg, st := testRegistry(t)
	id := st.addQuestion("Q1", "Shelter", KindOption, map[string]string{
		"Length": "3",
		"1":      "Tent",
		"2":      "House",
		"3":      "None",
	})
	qt, err := reg.Open(KindOption, id)
	require.NoError(t, err)

	ot, ok := qt.(*OptionType)
	require.True(t, ok)
	list, err := ot.Options()
	require.NoError(t, err)
	require.Equal(t, []string{"Tent", "House", "None"}, list)
}

func TestOptionListMissingLength(t *testing.T) {
	reg, st := testRegistry(t)
	id := st.addQuestion("Q1", "Shelter", KindOption, nil)
	qt, err := reg.Open(KindOption, id)
	require.NoError(t, err)

	_, err = qt.(*OptionType).Options()
	require.ErrorIs(t, err, ErrMissingOptions)
}

func TestYesNoVariants(t *testing.T) {
	reg, st := testRegistry(t)
	ynID := st.addQuestion("Q1", "Damaged", KindYesNo, nil)
	dkID := st.addQuestion("Q2", "Safe", KindYesNoDontKnow, nil)

	yn, err := reg.Open(KindYesNo, ynID)
	require.NoError(t, err)
	list, err := yn.(*OptionType).Options()
	require.NoError(t, err)
	require.Equal(t, []string{"Yes", "No"}, list)

	dk, err := reg.Open(KindYesNoDontKnow, dkID)
	require.NoError(t, err)
	list, err = dk.(*OptionType).Options()
	require.NoError(t, err)
	require.Equal(t, []string{"Yes", "No", "Don't Know"}, list)
}

func TestOptionOtherAppendsOther(t *testing.T) {
	reg, st := testRegistry(t)
	id := st.addQuestion("Q1", "Water source", KindOptionOther, map[string]string{
		"Length": "2",
		"1":      "Well",
		"2":      "River",
	})
	qt, err := reg.Open(KindOptionOther, id)
	require.NoError(t, err)

	list, err := qt.(*OptionType).Options()
	require.NoError(t, err)
	require.Equal(t, []string{"Well", "River", "Other"}, list)
}

func TestOptionWriteMatrix(t *testing.T) {
	reg, st := testRegistry(t)
	id := st.addQuestion("Q1", "Damaged", KindYesNo, nil)
	qt, err := reg.Open(KindYesNo, id)
	require.NoError(t, err)

	m := matrix.New()
	answers := matrix.New()
	nextRow, nextCol, err := qt.WriteMatrix(m, 0, 0, nil, answers, DefaultLayout())
	require.NoError(t, err)
	// label, instructions, then one row per option starting at the label row
	require.Equal(t, 2, nextRow)
	require.Equal(t, 4, nextCol)

	yes, ok := m.Get(0, 2)
	require.True(t, ok)
	require.Equal(t, "Yes", yes.Text)
	no, ok := m.Get(1, 2)
	require.True(t, ok)
	require.Equal(t, "No", no.Text)
	input, ok := m.Get(0, 3)
	require.True(t, ok)
	require.Equal(t, []string{StyleInput}, input.Styles)

	// answer-map row: code, count, joined labels, then one ref per option
	code, _ := answers.Get(1, 0)
	require.Equal(t, "Q1", code.Text)
	count, _ := answers.Get(1, 1)
	require.Equal(t, "2", count.Text)
	labels, _ := answers.Get(1, 2)
	require.Equal(t, "Yes|#|No", labels.Text)
	ref0, _ := answers.Get(1, 3)
	require.Equal(t, "D1", ref0.Text)
	ref1, _ := answers.Get(1, 4)
	require.Equal(t, "D2", ref1.Text)
}

func TestMultiOptionSelections(t *testing.T) {
	reg, st := testRegistry(t)
	id := st.addQuestion("Q1", "Needs", KindMultiOption, map[string]string{
		"Length": "2", "1": "Food", "2": "Water",
	})
	qt, err := reg.Open(KindMultiOption, id)
	require.NoError(t, err)
	mt := qt.(*MultiOptionType)

	require.Equal(t, []string{"Food", "Water"}, mt.DecodeSelections(`["Food", "Water"]`))
	// Single-quoted storage form decodes the same way.
	require.Equal(t, []string{"Food"}, mt.DecodeSelections("['Food']"))
	// Labels ending in u survive both quoting forms.
	require.Equal(t, []string{"Menu", "Tofu"}, mt.DecodeSelections("['Menu', u'Tofu']"))
	// Malformed input is an empty selection, not an error.
	require.Empty(t, mt.DecodeSelections("not json"))
	require.Empty(t, mt.DecodeSelections(""))

	encoded, err := mt.EncodeSelections([]string{"Food", "Water"})
	require.NoError(t, err)
	require.Equal(t, "['Food','Water']", encoded)
	require.Equal(t, []string{"Food", "Water"}, mt.DecodeSelections(encoded))
}
