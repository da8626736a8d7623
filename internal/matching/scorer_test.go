// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/symptoms"
)

func keywordSet(keywords ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		s[k] = struct{}{}
	}
	return s
}

func TestScore_FullMatch(t *testing.T) {
	records := []database.Disease{
		{ID: 1, DiseaseName: "Influenza", MedicineMeasures: "Rest and fluids", Fever: true, Cough: true},
	}
	keywords := symptoms.Extract("I have fever and a cough")

	results := Score(records, keywords)
	require.Len(t, results, 1)

	assert.Equal(t, []symptoms.Field{symptoms.Fever, symptoms.Cough}, results[0].MatchedSymptoms)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestScore_PartialMatch(t *testing.T) {
	// Requested fields {fever, cough}; record only has fever.
	records := []database.Disease{
		{ID: 1, DiseaseName: "Dengue Fever", MedicineMeasures: "Fluids", Fever: true},
	}

	results := Score(records, keywordSet("fever", "cough"))
	require.Len(t, results, 1)

	assert.Equal(t, []symptoms.Field{symptoms.Fever}, results[0].MatchedSymptoms)
	assert.Equal(t, 0.5, results[0].Score)
}

func TestScore_ZeroMatchKept(t *testing.T) {
	// The return-all fallback can hand the scorer records matching nothing;
	// they stay in the list with a zero score.
	records := []database.Disease{
		{ID: 1, DiseaseName: "Gastritis", MedicineMeasures: "Antacids", Nausea: true},
	}

	results := Score(records, keywordSet("fever"))
	require.Len(t, results, 1)
	assert.Empty(t, results[0].MatchedSymptoms)
	assert.Zero(t, results[0].Score)
}

func TestScore_RankingAndTieBreak(t *testing.T) {
	records := []database.Disease{
		{ID: 3, DiseaseName: "C", MedicineMeasures: "x", Fever: true, Cough: true},
		{ID: 1, DiseaseName: "A", MedicineMeasures: "x", Fever: true},
		{ID: 2, DiseaseName: "B", MedicineMeasures: "x", Fever: true, Cough: true},
	}

	results := Score(records, keywordSet("fever", "cough"))
	require.Len(t, results, 3)

	assert.Equal(t, uint(2), results[0].Disease.ID, "higher score first, ties by id ascending")
	assert.Equal(t, uint(3), results[1].Disease.ID)
	assert.Equal(t, uint(1), results[2].Disease.ID)
}

func TestScore_CollapsedKeywordsStayBounded(t *testing.T) {
	// Several keywords mapping onto one field must not push the score past 1.
	records := []database.Disease{
		{ID: 1, DiseaseName: "Influenza", MedicineMeasures: "x", Fever: true},
	}

	results := Score(records, keywordSet("fever", "high_fever", "temperature", "pyrexia"))
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestScore_NoRecords(t *testing.T) {
	assert.Empty(t, Score(nil, keywordSet("fever")))
}
