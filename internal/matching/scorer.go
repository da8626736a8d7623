// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package matching

import (
	"sort"

	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/symptoms"
)

// MatchResult pairs a disease record with its match score and the canonical
// symptoms found both in the user's keywords and set true on the record.
// Results are recomputed on every analysis and never persisted.
type MatchResult struct {
	Disease         database.Disease `json:"disease"`
	Score           float64          `json:"score"`
	MatchedSymptoms []symptoms.Field `json:"matchedSymptoms"`
}

// Score computes a match score for each candidate record against the
// extracted keyword set and returns the results ranked.
//
// A field counts as matched when it is true on the record and any keyword
// maps to it. The score is |matchedSymptoms| / max(|requested fields|, 1),
// clamped to [0,1]; normalizing by the mapped-field count rather than the raw
// keyword count keeps the score bounded when several keywords collapse onto
// one field. Records the store returned with zero matches are kept (that only
// happens on the return-all fallback). Ranking is by score descending with
// ties broken by id ascending, so result order is deterministic.
func Score(records []database.Disease, keywords map[string]struct{}) []MatchResult {
	requested := symptoms.MapToFields(keywords)

	results := make([]MatchResult, 0, len(records))
	for _, record := range records {
		var matched []symptoms.Field
		for _, f := range symptoms.SortedFields(requested) {
			if record.HasSymptom(f) {
				matched = append(matched, f)
			}
		}

		score := float64(len(matched)) / float64(maxInt(len(requested), 1))
		if score > 1 {
			score = 1
		}

		results = append(results, MatchResult{
			Disease:         record,
			Score:           score,
			MatchedSymptoms: matched,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Disease.ID < results[j].Disease.ID
	})

	return results
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
