// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package symptoms

import "strings"

// Field identifies one of the twelve canonical boolean symptom attributes on a
// disease record. The string value doubles as the database column name.
type Field string

// Canonical symptom fields
const (
	Fever          Field = "fever"
	Headache       Field = "headache"
	Cough          Field = "cough"
	Nausea         Field = "nausea"
	Vomiting       Field = "vomiting"
	ChestPain      Field = "chest_pain"
	Breathlessness Field = "breathlessness"
	AbdominalPain  Field = "abdominal_pain"
	SoreThroat     Field = "sore_throat"
	RunnyNose      Field = "runny_nose"
	BodyAches      Field = "body_aches"
	Sweating       Field = "sweating"
)

// AllFields returns the canonical symptom fields in their fixed order.
func AllFields() []Field {
	return []Field{
		Fever,
		Headache,
		Cough,
		Nausea,
		Vomiting,
		ChestPain,
		Breathlessness,
		AbdominalPain,
		SoreThroat,
		RunnyNose,
		BodyAches,
		Sweating,
	}
}

// FieldCount is the fixed number of canonical symptom fields. It is the
// denominator for the match confidence reported by the search endpoint.
const FieldCount = 12

// camelNames maps each field to its camelCase spelling as used by the JSON API.
var camelNames = map[Field]string{
	Fever:          "fever",
	Headache:       "headache",
	Cough:          "cough",
	Nausea:         "nausea",
	Vomiting:       "vomiting",
	ChestPain:      "chestPain",
	Breathlessness: "breathlessness",
	AbdominalPain:  "abdominalPain",
	SoreThroat:     "soreThroat",
	RunnyNose:      "runnyNose",
	BodyAches:      "bodyAches",
	Sweating:       "sweating",
}

// CamelName returns the camelCase JSON spelling of a field.
func CamelName(f Field) string {
	return camelNames[f]
}

// IsField reports whether s is exactly a canonical field identifier.
func IsField(s string) bool {
	for _, f := range AllFields() {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Normalize resolves an externally supplied symptom name to its canonical
// field. Both snake_case and camelCase spellings are accepted, case
// insensitively; comparison ignores underscores so "chest_pain", "chestPain"
// and "CHESTPAIN" all resolve to the same field.
func Normalize(name string) (Field, bool) {
	folded := foldName(name)
	for _, f := range AllFields() {
		if foldName(string(f)) == folded {
			return f, true
		}
	}
	return "", false
}

// ValidNames returns every accepted spelling of the canonical fields, both
// snake_case and camelCase where they differ. Used for the validSymptoms list
// in search endpoint error responses.
func ValidNames() []string {
	names := make([]string, 0, 2*FieldCount)
	for _, f := range AllFields() {
		names = append(names, string(f))
		if camel := camelNames[f]; camel != string(f) {
			names = append(names, camel)
		}
	}
	return names
}

func foldName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.ReplaceAll(s, "_", "")
}
