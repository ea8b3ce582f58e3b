package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relieftools/surveygrid/internal/question"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuestionRoundTrip(t *testing.T) {
	s := openStore(t)

	id, err := s.UpsertQuestion(question.Question{
		Code: "POP", Name: "People affected", Type: question.KindNumeric,
	}, map[string]string{"Length": "6", "Format": "n"})
	require.NoError(t, err)

	byID, err := s.QuestionByID(id)
	require.NoError(t, err)
	require.Equal(t, "POP", byID.Code)
	require.Equal(t, question.KindNumeric, byID.Type)

	byCode, err := s.QuestionByCode("POP")
	require.NoError(t, err)
	require.Equal(t, id, byCode.ID)

	meta, err := s.MetadataForQuestion(id)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"Length": "6", "Format": "n"}, meta)

	_, err = s.QuestionByID(999)
	require.ErrorIs(t, err, question.ErrUnknownQuestion)
	_, err = s.QuestionByCode("NOPE")
	require.ErrorIs(t, err, question.ErrUnknownCode)
}

func TestUpsertQuestionUpdatesInPlace(t *testing.T) {
	s := openStore(t)

	id, err := s.UpsertQuestion(question.Question{Code: "Q1", Name: "Old", Type: question.KindString}, map[string]string{"Length": "10"})
	require.NoError(t, err)

	again, err := s.UpsertQuestion(question.Question{Code: "Q1", Name: "New", Type: question.KindText}, map[string]string{"Length": "200"})
	require.NoError(t, err)
	require.Equal(t, id, again)

	q, err := s.QuestionByID(id)
	require.NoError(t, err)
	require.Equal(t, "New", q.Name)
	require.Equal(t, question.KindText, q.Type)

	meta, err := s.MetadataForQuestion(id)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"Length": "200"}, meta)
}

func TestMetadataQuoteStripping(t *testing.T) {
	s := openStore(t)

	id, err := s.UpsertQuestion(question.Question{Code: "Q1", Name: "Grid", Type: question.KindGrid},
		map[string]string{"Subtitle": `"Damage"`, "col-cnt": "2"})
	require.NoError(t, err)

	meta, err := s.MetadataForQuestion(id)
	require.NoError(t, err)
	require.Equal(t, "Damage", meta["Subtitle"])
	require.Equal(t, "2", meta["col-cnt"])
}

func TestAnswerRoundTrip(t *testing.T) {
	s := openStore(t)
	id, err := s.UpsertQuestion(question.Question{Code: "Q1", Name: "Name", Type: question.KindString}, nil)
	require.NoError(t, err)

	_, ok, err := s.Answer("c1", id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SaveAnswer("c1", id, "first"))
	v, ok, err := s.Answer("c1", id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", v)

	// Saving again replaces.
	require.NoError(t, s.SaveAnswer("c1", id, "second"))
	v, _, err = s.Answer("c1", id)
	require.NoError(t, err)
	require.Equal(t, "second", v)

	require.NoError(t, s.SaveAnswer("c2", id, "other"))
	answers, err := s.AnswersForQuestion(id)
	require.NoError(t, err)
	require.Equal(t, []question.Answer{
		{CompleteID: "c1", Value: "second"},
		{CompleteID: "c2", Value: "other"},
	}, answers)
}

func TestLocationLookups(t *testing.T) {
	s := openStore(t)
	for _, loc := range []question.Location{
		{Name: "Agos", Parent: "Albay", Level: "L3"},
		{Name: "Agos", Parent: "Quezon", Level: "L3"},
		{Name: "Daraga", Alternative: "Darraga", Parent: "Albay", Level: "L3"},
	} {
		_, err := s.AddLocation(loc)
		require.NoError(t, err)
	}

	both, err := s.LocationsByName("Agos", "")
	require.NoError(t, err)
	require.Len(t, both, 2)

	one, err := s.LocationsByName("Agos", "Albay")
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "Albay", one[0].Parent)

	// Alternative names match too.
	alt, err := s.LocationsByName("Darraga", "")
	require.NoError(t, err)
	require.Len(t, alt, 1)
	require.Equal(t, "Daraga", alt[0].Name)

	byID, err := s.LocationByID(alt[0].ID)
	require.NoError(t, err)
	require.Len(t, byID, 1)

	none, err := s.LocationsByName("Atlantis", "")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSeed(t *testing.T) {
	s := openStore(t)
	require.NoError(t, Seed(s, 3))

	questions, err := s.Questions()
	require.NoError(t, err)
	require.Len(t, questions, 7)

	pop, err := s.QuestionByCode("POP")
	require.NoError(t, err)
	answers, err := s.AnswersForQuestion(pop.ID)
	require.NoError(t, err)
	require.Len(t, answers, 3)
	// Every response is a distinct instance.
	seen := map[string]bool{}
	for _, a := range answers {
		require.False(t, seen[a.CompleteID])
		seen[a.CompleteID] = true
	}
}
