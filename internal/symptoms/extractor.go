// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package symptoms

import (
	"regexp"
	"strings"
)

// synonymTable maps a canonical keyword to the synonym phrases that commonly
// describe the same complaint in free text. Expansion is deliberately
// permissive: a partial overlap between a token and an entry pulls in the
// whole entry, which over-matches on short tokens but keeps recall high for
// colloquial input.
var synonymTable = map[string][]string{
	"fever":     {"high_fever", "mild_fever", "temperature", "pyrexia"},
	"headache":  {"head_pain", "migraine"},
	"cough":     {"coughing", "persistent_cough"},
	"nausea":    {"feeling_sick", "queasy"},
	"vomiting":  {"vomit", "throwing_up"},
	"chest":     {"chest_pain", "chest_discomfort", "heart_pain"},
	"breathing": {"breathlessness", "shortness_of_breath", "difficulty_breathing"},
	"stomach":   {"abdominal_pain", "belly_pain", "stomach_ache", "tummy_ache"},
	"throat":    {"sore_throat", "throat_irritation", "scratchy_throat"},
	"nose":      {"runny_nose", "nasal_discharge", "stuffy_nose"},
	"aches":     {"body_aches", "muscle_pain", "joint_pain"},
	"sweating":  {"perspiration", "excessive_sweating"},
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Extract tokenizes free-text symptom input into a normalized keyword set.
//
// The input is lowercased, punctuation is replaced with spaces and the text is
// split on whitespace. Tokens of length <= 2 are discarded. Each surviving
// token is kept as a keyword, and any synonym-table entry it overlaps with
// (token contained in a synonym phrase, or canonical key contained in the
// token) contributes its canonical key and all of its phrases.
//
// Empty or whitespace-only input yields an empty set, which downstream
// components treat as "no query".
func Extract(text string) map[string]struct{} {
	keywords := make(map[string]struct{})

	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		keywords[token] = struct{}{}
		expand(token, keywords)
	}

	return keywords
}

func expand(token string, keywords map[string]struct{}) {
	for key, phrases := range synonymTable {
		if !overlaps(token, key, phrases) {
			continue
		}
		keywords[key] = struct{}{}
		for _, phrase := range phrases {
			keywords[phrase] = struct{}{}
		}
	}
}

func overlaps(token, key string, phrases []string) bool {
	if strings.Contains(token, key) {
		return true
	}
	for _, phrase := range phrases {
		if strings.Contains(phrase, token) {
			return true
		}
	}
	return false
}
