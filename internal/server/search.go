// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/symptoms"
)

// SearchHandler serves POST /diseases/search.
type SearchHandler struct {
	store *database.Store
	log   *logger.Logger
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(store *database.Store, log *logger.Logger) *SearchHandler {
	return &SearchHandler{store: store, log: log.With("component", "server.search")}
}

// SearchResult is a disease record annotated with how well it matched the
// requested symptoms. matchConfidence is matched symptoms over the full
// twelve-flag set, formatted as a percentage.
type SearchResult struct {
	database.Disease
	MatchedSymptomsCount int    `json:"matchedSymptomsCount"`
	MatchConfidence      string `json:"matchConfidence"`
}

// Search handles POST /diseases/search with body {"symptoms": [...]}.
// Symptom names are accepted in snake_case or camelCase. An empty array is
// the documented fallback: every record, in creation order, at zero
// confidence.
func (h *SearchHandler) Search(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}

	rawList, ok := body["symptoms"].([]interface{})
	if !ok {
		respondError(c, http.StatusBadRequest, "Request body must contain a symptoms array", CodeMissingSymptomsArray)
		return
	}

	seen := make(map[symptoms.Field]struct{}, len(rawList))
	fields := make([]symptoms.Field, 0, len(rawList))
	var invalid []string
	for _, item := range rawList {
		name, isString := item.(string)
		if !isString {
			respondError(c, http.StatusBadRequest, "Symptom names must be strings", CodeInvalidSymptomType)
			return
		}
		field, known := symptoms.Normalize(name)
		if !known {
			invalid = append(invalid, name)
			continue
		}
		if _, dup := seen[field]; !dup {
			seen[field] = struct{}{}
			fields = append(fields, field)
		}
	}
	if len(invalid) > 0 {
		respondError(c, http.StatusBadRequest, "Invalid symptom names", CodeInvalidSymptomNames,
			gin.H{"invalidSymptoms": invalid, "validSymptoms": symptoms.ValidNames()})
		return
	}

	records, err := h.store.FindBySymptoms(fields)
	if err != nil {
		internalError(c, err)
		return
	}

	results := make([]SearchResult, 0, len(records))
	for _, record := range records {
		matched := 0
		for _, f := range fields {
			if record.HasSymptom(f) {
				matched++
			}
		}
		results = append(results, SearchResult{
			Disease:              record,
			MatchedSymptomsCount: matched,
			MatchConfidence:      fmt.Sprintf("%.1f%%", float64(matched)/float64(symptoms.FieldCount)*100),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
