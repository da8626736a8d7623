// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned by the API. Clients branch on these rather than on
// message text.
const (
	CodeMissingDiseaseName      = "MISSING_DISEASE_NAME"
	CodeMissingMedicineMeasures = "MISSING_MEDICINE_MEASURES"
	CodeInvalidID               = "INVALID_ID"
	CodeDiseaseNotFound         = "DISEASE_NOT_FOUND"
	CodeInvalidDiseaseName      = "INVALID_DISEASE_NAME"
	CodeInvalidMedicineMeasures = "INVALID_MEDICINE_MEASURES"
	CodeInvalidSymptomValue     = "INVALID_SYMPTOM_VALUE"
	CodeInvalidJSON             = "INVALID_JSON"
	CodeMissingSymptomsArray    = "MISSING_SYMPTOMS_ARRAY"
	CodeInvalidSymptomType      = "INVALID_SYMPTOM_TYPE"
	CodeInvalidSymptomNames     = "INVALID_SYMPTOM_NAMES"
	CodeAnalysisInProgress      = "ANALYSIS_IN_PROGRESS"
	CodeVoiceDisabled           = "VOICE_DISABLED"
)

// respondError writes the flat error body used across the API:
// {"error": "...", "code": "..."} with code omitted when empty. extra pairs
// are merged in (the invalid-symptom response carries validSymptoms this way).
func respondError(c *gin.Context, status int, message, code string, extra ...gin.H) {
	body := gin.H{"error": message}
	if code != "" {
		body["code"] = code
	}
	for _, e := range extra {
		for k, v := range e {
			body[k] = v
		}
	}
	c.JSON(status, body)
}

// internalError is the catch-all for unexpected failures.
func internalError(c *gin.Context, err error) {
	respondError(c, http.StatusInternalServerError, "Internal server error: "+err.Error(), "")
}
