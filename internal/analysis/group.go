package analysis

import (
	"sort"

	"github.com/relieftools/surveygrid/internal/question"
)

// GroupData buckets this question's raw answers by the distinct values
// of a grouping question. The join key is the complete id: a response
// is only counted in a bucket when it answered both questions. A
// grouping value whose responses never answered this question still
// gets a key with an empty bucket.
func (b *base) GroupData(groupAnswers []question.Answer) map[string][]string {
	byComplete := make(map[string]string, len(b.answers))
	for _, ans := range b.answers {
		byComplete[ans.CompleteID] = ans.Value
	}
	grouped := map[string][]string{}
	for _, g := range groupAnswers {
		value, ok := byComplete[g.CompleteID]
		if ok {
			grouped[g.Value] = append(grouped[g.Value], value)
			continue
		}
		if _, seen := grouped[g.Value]; !seen {
			grouped[g.Value] = []string{}
		}
	}
	return grouped
}

// SplitGrouped flattens grouped data into parallel key and value-list
// slices, sorted by key so chart series are deterministic.
func SplitGrouped(grouped map[string][]string) (keys []string, values [][]string) {
	keys = make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values = make([][]string, len(keys))
	for i, k := range keys {
		values[i] = grouped[k]
	}
	return keys, values
}
