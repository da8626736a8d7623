// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package symptoms

import "strings"

type keywordMapping struct {
	keyword string
	field   Field
}

// keywordFields maps extractor keywords to canonical fields. Ordered so that
// the substring fallback scan is deterministic.
var keywordFields = []keywordMapping{
	{"fever", Fever},
	{"high_fever", Fever},
	{"mild_fever", Fever},
	{"temperature", Fever},
	{"pyrexia", Fever},
	{"headache", Headache},
	{"head_pain", Headache},
	{"migraine", Headache},
	{"cough", Cough},
	{"coughing", Cough},
	{"persistent_cough", Cough},
	{"nausea", Nausea},
	{"feeling_sick", Nausea},
	{"queasy", Nausea},
	{"vomiting", Vomiting},
	{"vomit", Vomiting},
	{"throwing_up", Vomiting},
	{"chest_pain", ChestPain},
	{"chest", ChestPain},
	{"chest_discomfort", ChestPain},
	{"heart_pain", ChestPain},
	{"breathlessness", Breathlessness},
	{"breathing", Breathlessness},
	{"shortness_of_breath", Breathlessness},
	{"difficulty_breathing", Breathlessness},
	{"abdominal_pain", AbdominalPain},
	{"stomach", AbdominalPain},
	{"stomach_ache", AbdominalPain},
	{"belly_pain", AbdominalPain},
	{"tummy_ache", AbdominalPain},
	{"sore_throat", SoreThroat},
	{"throat", SoreThroat},
	{"throat_irritation", SoreThroat},
	{"scratchy_throat", SoreThroat},
	{"runny_nose", RunnyNose},
	{"nose", RunnyNose},
	{"nasal_discharge", RunnyNose},
	{"stuffy_nose", RunnyNose},
	{"body_aches", BodyAches},
	{"aches", BodyAches},
	{"muscle_pain", BodyAches},
	{"joint_pain", BodyAches},
	{"sweating", Sweating},
	{"perspiration", Sweating},
	{"excessive_sweating", Sweating},
}

// MapToFields resolves extractor keywords to canonical symptom fields.
//
// Each keyword is first looked up directly in the keyword table. Failing that,
// the table is scanned for an entry whose keyword is a substring of the input
// keyword or vice versa, with underscores stripped for the comparison, and the
// first such entry wins. Keywords that map to nothing are silently dropped.
//
// An empty keyword set yields an empty field set; callers decide what that
// means (the analysis pipeline short-circuits to an empty result, it never
// falls through to the store's return-all behavior).
func MapToFields(keywords map[string]struct{}) map[Field]struct{} {
	fields := make(map[Field]struct{})
	for keyword := range keywords {
		if f, ok := lookupField(keyword); ok {
			fields[f] = struct{}{}
		}
	}
	return fields
}

func lookupField(keyword string) (Field, bool) {
	for _, m := range keywordFields {
		if m.keyword == keyword {
			return m.field, true
		}
	}

	stripped := strings.ReplaceAll(keyword, "_", "")
	for _, m := range keywordFields {
		key := strings.ReplaceAll(m.keyword, "_", "")
		if strings.Contains(key, stripped) || strings.Contains(stripped, key) {
			return m.field, true
		}
	}
	return "", false
}

// SortedFields returns the fields of a set in canonical order. Keeps query
// building and JSON output deterministic.
func SortedFields(set map[Field]struct{}) []Field {
	ordered := make([]Field, 0, len(set))
	for _, f := range AllFields() {
		if _, ok := set[f]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}
