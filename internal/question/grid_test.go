package question

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relieftools/surveygrid/internal/matrix"
)

func TestLinkDelegation(t *testing.T) {
	reg, st := testRegistry(t)
	parentID := st.addQuestion("P1", "Household size", KindNumeric, nil)
	linkID := st.addQuestion("Q1", "Same household", KindLink, map[string]string{
		"Parent":   "P1",
		"Type":     "Numeric",
		"Relation": "groupby",
		"Format":   "n.2",
	})

	qt, err := reg.Open(KindLink, linkID)
	require.NoError(t, err)
	lt := qt.(*LinkType)

	require.Equal(t, KindNumeric, lt.TargetKind())
	require.Equal(t, "groupby", lt.Relation())
	require.Equal(t, "Numeric linked to P1", lt.Description())

	id, err := lt.ParentQuestionID()
	require.NoError(t, err)
	require.Equal(t, parentID, id)

	// The format lives on the link's metadata and flows through the
	// delegate.
	got, err := lt.CanonicalizeForStorage("3.14159")
	require.NoError(t, err)
	require.Equal(t, "3.14", got)

	target, err := lt.Target()
	require.NoError(t, err)
	require.Equal(t, KindNumeric, target.Kind())
	require.Equal(t, "Q1", target.Question().Code)
}

func TestLinkMissingType(t *testing.T) {
	reg, st := testRegistry(t)
	linkID := st.addQuestion("Q1", "Broken", KindLink, map[string]string{"Parent": "P1"})
	qt, err := reg.Open(KindLink, linkID)
	require.NoError(t, err)

	_, err = qt.(*LinkType).Target()
	require.ErrorIs(t, err, ErrMissingType)
}

func gridFixture(t *testing.T) (*Registry, *fakeStore, *GridType) {
	t.Helper()
	reg, st := testRegistry(t)
	id := st.addQuestion("G-", "Damage assessment", KindGrid, map[string]string{
		"Subtitle":   "Damage",
		"QuestionNo": "1",
		"col-cnt":    "2",
		"row-cnt":    "2",
		"columns":    "['Before', 'After']",
		"rows":       "['Roof', 'Walls']",
		"data":       "[['String', 'String'], ['Blank', 'String']]",
	})
	qt, err := reg.Open(KindGrid, id)
	require.NoError(t, err)
	gt := qt.(*GridType)
	require.NoError(t, gt.InsertChildren())
	return reg, st, gt
}

func TestGridConfigAndChildren(t *testing.T) {
	_, st, gt := gridFixture(t)

	cfg, err := gt.Config()
	require.NoError(t, err)
	require.Equal(t, []string{"Before", "After"}, cfg.Columns)
	require.Equal(t, [][]string{{"String", "String"}, {"Blank", "String"}}, cfg.Data)

	// Three non-blank cells means three children numbered from QuestionNo.
	for _, code := range []string{"G-1", "G-2", "G-3"} {
		q, err := st.QuestionByCode(code)
		require.NoError(t, err, code)
		require.Equal(t, KindGridChild, q.Type)
	}
	_, err = st.QuestionByCode("G-4")
	require.Error(t, err)

	// Row name carries over, blank cells are skipped.
	q, _ := st.QuestionByCode("G-3")
	require.Equal(t, "Walls", q.Name)
}

func TestGridHeading(t *testing.T) {
	_, _, gt := gridFixture(t)

	heading, err := gt.Heading(1)
	require.NoError(t, err)
	require.Equal(t, "Before", heading)
	heading, err = gt.Heading(2)
	require.NoError(t, err)
	require.Equal(t, "After", heading)
	// Numbers wrap by column within later rows.
	heading, err = gt.Heading(3)
	require.NoError(t, err)
	require.Equal(t, "Before", heading)
}

func TestGridDataWiderThanHeadings(t *testing.T) {
	reg, st := testRegistry(t)

	// One column heading, two data columns.
	id := st.addQuestion("G-", "Damage assessment", KindGrid, map[string]string{
		"Subtitle":   "Damage",
		"QuestionNo": "1",
		"col-cnt":    "2",
		"row-cnt":    "1",
		"columns":    "['Before']",
		"rows":       "['Roof']",
		"data":       "[['String', 'String']]",
	})
	qt, err := reg.Open(KindGrid, id)
	require.NoError(t, err)
	gt := qt.(*GridType)
	require.NoError(t, gt.InsertChildren())

	_, _, err = gt.WriteMatrix(matrix.New(), 0, 0, nil, nil, DefaultLayout())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no column heading")

	// One row heading, two data rows.
	id = st.addQuestion("H-", "Shelter assessment", KindGrid, map[string]string{
		"Subtitle":   "Shelter",
		"QuestionNo": "1",
		"col-cnt":    "1",
		"row-cnt":    "2",
		"columns":    "['Before']",
		"rows":       "['Roof']",
		"data":       "[['String'], ['String']]",
	})
	qt, err = reg.Open(KindGrid, id)
	require.NoError(t, err)
	gt = qt.(*GridType)

	err = gt.InsertChildren()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no row heading")

	_, _, err = gt.WriteMatrix(matrix.New(), 0, 0, nil, nil, DefaultLayout())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no row heading")
}

func TestGridChildFullName(t *testing.T) {
	reg, st, _ := gridFixture(t)

	q, err := st.QuestionByCode("G-2")
	require.NoError(t, err)
	child, err := reg.Open(KindGridChild, q.ID)
	require.NoError(t, err)

	name, err := child.FullName()
	require.NoError(t, err)
	require.Equal(t, "Damage assessment - Roof (After)", name)
}

func TestGridWriteMatrix(t *testing.T) {
	reg, _, gt := gridFixture(t)
	_ = reg

	m := matrix.New()
	nextRow, nextCol, err := gt.WriteMatrix(m, 0, 0, nil, nil, DefaultLayout())
	require.NoError(t, err)
	require.Equal(t, 4, nextRow)
	require.Equal(t, 3, nextCol)

	subtitle, _ := m.Get(0, 0)
	require.Equal(t, "Damage", subtitle.Text)
	before, _ := m.Get(0, 1)
	require.Equal(t, "Before", before.Text)
	after, _ := m.Get(0, 2)
	require.Equal(t, "After", after.Text)
	roof, _ := m.Get(1, 0)
	require.Equal(t, "Roof", roof.Text)
	walls, _ := m.Get(2, 0)
	require.Equal(t, "Walls", walls.Text)

	// Children draw an input cell each; the blank cell stays empty.
	cell, ok := m.Get(1, 1)
	require.True(t, ok)
	require.Equal(t, []string{StyleInput}, cell.Styles)
	_, ok = m.Get(2, 1)
	require.False(t, ok)
	cell, ok = m.Get(2, 2)
	require.True(t, ok)
	require.Equal(t, []string{StyleInput}, cell.Styles)
}
