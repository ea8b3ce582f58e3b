package store

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/relieftools/surveygrid/internal/question"
)

// Seed populates the store with a small rapid-assessment survey, a
// gazetteer and a handful of responses, for demos and layout testing.
// Each response instance gets a fresh uuid complete id.
func Seed(s *SQLiteStore, responses int) error {
	questions := []struct {
		q    question.Question
		meta map[string]string
	}{
		{question.Question{Code: "NAME", Name: "Name of assessor", Type: question.KindString}, map[string]string{"Length": "20"}},
		{question.Question{Code: "DATE", Name: "Date of assessment", Type: question.KindDate}, nil},
		{question.Question{Code: "LOC", Name: "Affected community", Type: question.KindLocation}, map[string]string{"Hierarchy": "true"}},
		{question.Question{Code: "POP", Name: "People affected", Type: question.KindNumeric}, map[string]string{"Length": "6", "Format": "n"}},
		{question.Question{Code: "DMG", Name: "Is the main road damaged", Type: question.KindYesNo}, nil},
		{question.Question{Code: "NEEDS", Name: "Immediate needs", Type: question.KindMultiOption}, map[string]string{
			"Length": "4", "1": "Food", "2": "Water", "3": "Shelter", "4": "Medical",
		}},
		{question.Question{Code: "SRC", Name: "Main water source", Type: question.KindOptionOther}, map[string]string{
			"Length": "3", "1": "Well", "2": "River", "3": "Piped",
		}},
	}
	ids := map[string]int{}
	for _, entry := range questions {
		id, err := s.UpsertQuestion(entry.q, entry.meta)
		if err != nil {
			return err
		}
		ids[entry.q.Code] = id
	}

	gazetteer := []question.Location{
		{Name: "Agos", Parent: "Albay", Level: "L3", Lat: 13.15, Lon: 123.75},
		{Name: "Agos", Parent: "Quezon", Level: "L3", Lat: 14.51, Lon: 121.61},
		{Name: "Daraga", Alternative: "Darraga", Parent: "Albay", Level: "L3", Lat: 13.16, Lon: 123.69},
		{Name: "Albay", Level: "L2", Lat: 13.23, Lon: 123.61},
	}
	for _, loc := range gazetteer {
		if _, err := s.AddLocation(loc); err != nil {
			return err
		}
	}

	places := []string{"Agos", "Daraga", "Atlantis"}
	needs := []string{"['Food', 'Water']", "['Shelter']", "['Food', 'Medical']"}
	damaged := []string{"Yes", "No"}
	for i := 0; i < responses; i++ {
		completeID := uuid.NewString()
		answers := map[string]string{
			"NAME":  fmt.Sprintf("Assessor %d", i+1),
			"DATE":  "2011-09-14",
			"LOC":   places[i%len(places)],
			"POP":   strconv.Itoa(50 + 37*i),
			"DMG":   damaged[i%len(damaged)],
			"NEEDS": needs[i%len(needs)],
			"SRC":   "Well",
		}
		for code, value := range answers {
			if err := s.SaveAnswer(completeID, ids[code], value); err != nil {
				return err
			}
		}
	}
	return nil
}
