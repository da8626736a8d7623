// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sympmatch/sympmatch/internal/database"
	applog "github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/matching"
	"github.com/sympmatch/sympmatch/internal/session"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &database.Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		LogLevel:   gormlogger.Silent,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	store := database.NewStore(db)
	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)

	log := applog.NewNop()
	analyzer := matching.NewAnalyzer(store, sessions, nil, log, 5, false)

	router := NewRouter(RouterConfig{
		Diseases: NewDiseaseHandler(store, log),
		Search:   NewSearchHandler(store, log),
		Analyze:  NewAnalyzeHandler(analyzer, nil, log),
		Sessions: NewSessionHandler(sessions, log),
		Log:      log,
	})
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createDisease(t *testing.T, store *database.Store, record database.Disease) database.Disease {
	t.Helper()
	require.NoError(t, store.Create(&record))
	return record
}

func TestHealthcheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCreateDisease(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/diseases", gin.H{
		"diseaseName":      "Influenza",
		"medicineMeasures": "Rest and fluids",
		"fever":            true,
		"cough":            true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotZero(t, body["id"])
	assert.Equal(t, "Influenza", body["diseaseName"])
	assert.Equal(t, true, body["fever"])
	assert.Equal(t, false, body["nausea"])
}

func TestCreateDisease_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
		code string
	}{
		{"missing name", gin.H{"medicineMeasures": "x"}, CodeMissingDiseaseName},
		{"blank name", gin.H{"diseaseName": "  ", "medicineMeasures": "x"}, CodeMissingDiseaseName},
		{"missing measures", gin.H{"diseaseName": "Flu"}, CodeMissingMedicineMeasures},
		{"non-boolean symptom", gin.H{"diseaseName": "Flu", "medicineMeasures": "x", "fever": "yes"}, CodeInvalidSymptomValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/diseases", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeBody(t, w)["code"])
		})
	}
}

func TestGetDisease(t *testing.T) {
	router, store := newTestRouter(t)
	record := createDisease(t, store, database.Disease{DiseaseName: "Migraine", MedicineMeasures: "Triptans", Headache: true})

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/diseases/%d", record.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Migraine", decodeBody(t, w)["diseaseName"])

	w = doJSON(t, router, http.MethodGet, "/api/diseases/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeDiseaseNotFound, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodGet, "/api/diseases/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidID, decodeBody(t, w)["code"])
}

func TestListDiseases(t *testing.T) {
	router, store := newTestRouter(t)
	createDisease(t, store, database.Disease{DiseaseName: "Common Cold", MedicineMeasures: "Rest"})
	createDisease(t, store, database.Disease{DiseaseName: "Influenza", MedicineMeasures: "Rest"})
	createDisease(t, store, database.Disease{DiseaseName: "Gastritis", MedicineMeasures: "Antacids"})

	w := doJSON(t, router, http.MethodGet, "/api/diseases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/diseases?limit=2", nil)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/diseases?search=Influenza", nil)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
}

func TestUpdateDisease(t *testing.T) {
	router, store := newTestRouter(t)
	record := createDisease(t, store, database.Disease{DiseaseName: "Angina", MedicineMeasures: "Nitroglycerin", ChestPain: true})

	// Path form: change one symptom flag, leave everything else alone.
	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/diseases/%d", record.ID), gin.H{"sweating": true})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["sweating"])
	assert.Equal(t, true, body["chestPain"])
	assert.Equal(t, "Angina", body["diseaseName"])

	// Query-string form.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/diseases?id=%d", record.ID), gin.H{"medicineMeasures": "Rest and nitroglycerin"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rest and nitroglycerin", decodeBody(t, w)["medicineMeasures"])
}

func TestUpdateDisease_Validation(t *testing.T) {
	router, store := newTestRouter(t)
	record := createDisease(t, store, database.Disease{DiseaseName: "Asthma", MedicineMeasures: "Inhaler"})
	path := fmt.Sprintf("/api/diseases/%d", record.ID)

	tests := []struct {
		name string
		body gin.H
		code string
	}{
		{"blank name", gin.H{"diseaseName": ""}, CodeInvalidDiseaseName},
		{"non-string name", gin.H{"diseaseName": 7}, CodeInvalidDiseaseName},
		{"blank measures", gin.H{"medicineMeasures": "  "}, CodeInvalidMedicineMeasures},
		{"non-boolean symptom", gin.H{"cough": "true"}, CodeInvalidSymptomValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPut, path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeBody(t, w)["code"])
		})
	}

	w := doJSON(t, router, http.MethodPut, "/api/diseases/9999", gin.H{"cough": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDisease(t *testing.T) {
	router, store := newTestRouter(t)
	record := createDisease(t, store, database.Disease{DiseaseName: "GERD", MedicineMeasures: "Antacids"})

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/diseases?id=%d", record.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	deleted, ok := body["deleted"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "GERD", deleted["diseaseName"])

	// Deleting again is a 404.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/diseases/%d", record.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchDiseases(t *testing.T) {
	router, store := newTestRouter(t)
	createDisease(t, store, database.Disease{DiseaseName: "Influenza", MedicineMeasures: "Rest", Fever: true, Cough: true})
	createDisease(t, store, database.Disease{DiseaseName: "Common Cold", MedicineMeasures: "Rest", Cough: true, RunnyNose: true})

	// Conjunctive: fever AND cough leaves only Influenza. Both spellings of a
	// field name address the same flag.
	for _, spelling := range []string{"chest_pain", "chestPain"} {
		w := doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": []string{spelling}})
		require.Equal(t, http.StatusOK, w.Code, spelling)
		assert.EqualValues(t, 0, decodeBody(t, w)["count"], spelling)
	}

	w := doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": []string{"fever", "cough"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 1, body["count"])

	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Influenza", first["diseaseName"])
	assert.EqualValues(t, 2, first["matchedSymptomsCount"])
	assert.Equal(t, "16.7%", first["matchConfidence"], "2 of 12 flags")
}

func TestSearchDiseases_EmptyArrayReturnsAll(t *testing.T) {
	router, store := newTestRouter(t)
	createDisease(t, store, database.Disease{DiseaseName: "A", MedicineMeasures: "x"})
	createDisease(t, store, database.Disease{DiseaseName: "B", MedicineMeasures: "x"})

	w := doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": []string{}})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])
	results := body["results"].([]interface{})
	assert.Equal(t, "A", results[0].(map[string]interface{})["diseaseName"], "creation order")
	assert.Equal(t, "0.0%", results[0].(map[string]interface{})["matchConfidence"])
}

func TestSearchDiseases_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/diseases/search", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidJSON, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"other": 1})
	assert.Equal(t, CodeMissingSymptomsArray, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": "fever"})
	assert.Equal(t, CodeMissingSymptomsArray, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": []interface{}{"fever", 3}})
	assert.Equal(t, CodeInvalidSymptomType, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/diseases/search", gin.H{"symptoms": []string{"fever", "dizziness"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, CodeInvalidSymptomNames, body["code"])
	assert.Contains(t, body["invalidSymptoms"], "dizziness")
	assert.Contains(t, body["validSymptoms"], "chest_pain")
	assert.Contains(t, body["validSymptoms"], "chestPain")
}

func TestAnalyze(t *testing.T) {
	router, store := newTestRouter(t)
	createDisease(t, store, database.Disease{DiseaseName: "Influenza", MedicineMeasures: "Rest and fluids", Fever: true, Cough: true})
	createDisease(t, store, database.Disease{DiseaseName: "Gastritis", MedicineMeasures: "Antacids", Nausea: true})

	w := doJSON(t, router, http.MethodPost, "/api/analyze", gin.H{"text": "I have fever and a cough"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "I have fever and a cough", body["query"])
	assert.Equal(t, []interface{}{"fever", "cough"}, body["matchedFields"])

	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.EqualValues(t, 1, first["score"])
	assert.Equal(t, "Influenza", first["disease"].(map[string]interface{})["diseaseName"])
	assert.Contains(t, body["summary"], "Influenza")

	// The query lands in the recent-search history.
	w = doJSON(t, router, http.MethodGet, "/api/searches", nil)
	assert.Equal(t, []interface{}{"I have fever and a cough"}, decodeBody(t, w)["searches"])
}

func TestAnalyze_EmptyText(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/analyze", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_UnrecognizedText(t *testing.T) {
	router, store := newTestRouter(t)
	createDisease(t, store, database.Disease{DiseaseName: "Influenza", MedicineMeasures: "Rest", Fever: true})

	w := doJSON(t, router, http.MethodPost, "/api/analyze", gin.H{"text": "xyz"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Empty(t, body["results"], "unrecognized input does not fall back to all records")
	assert.Contains(t, body["summary"], "No clear pattern matches")
}

func TestAnalyzeVoice_Disabled(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/analyze/voice", gin.H{"audio": "AAAA", "mimeType": "audio/wav"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeVoiceDisabled, decodeBody(t, w)["code"])
}

func TestSearchHistory(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, text := range []string{"fever", "cough", "fever"} {
		w := doJSON(t, router, http.MethodPost, "/api/analyze", gin.H{"text": text})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/searches", nil)
	assert.Equal(t, []interface{}{"fever", "cough"}, decodeBody(t, w)["searches"], "resubmission moves to front without duplicating")

	w = doJSON(t, router, http.MethodDelete, "/api/searches", gin.H{"text": "cough"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"fever"}, decodeBody(t, w)["searches"])

	w = doJSON(t, router, http.MethodDelete, "/api/searches", gin.H{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotes(t *testing.T) {
	router, _ := newTestRouter(t)

	note := gin.H{
		"diseaseName":      "Influenza",
		"medicineMeasures": "Rest and fluids",
		"matchedSymptoms":  []string{"fever", "cough"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/notes", note)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["timestamp"])

	// Append-only: the same note saved twice appears twice.
	w = doJSON(t, router, http.MethodPost, "/api/notes", note)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notes", nil)
	notes := decodeBody(t, w)["notes"].([]interface{})
	assert.Len(t, notes, 2)

	w = doJSON(t, router, http.MethodPost, "/api/notes", gin.H{"medicineMeasures": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeMissingDiseaseName, decodeBody(t, w)["code"])
}
