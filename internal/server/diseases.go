// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/symptoms"
)

// DiseaseHandler serves the disease record CRUD endpoints.
type DiseaseHandler struct {
	store *database.Store
	log   *logger.Logger
}

// NewDiseaseHandler creates a disease handler.
func NewDiseaseHandler(store *database.Store, log *logger.Logger) *DiseaseHandler {
	return &DiseaseHandler{store: store, log: log.With("component", "server.diseases")}
}

// recordID pulls the record id from the path parameter or, for the
// query-string form of PUT/DELETE, from ?id=. Anything that is not a positive
// integer is rejected.
func recordID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Invalid disease ID", CodeInvalidID)
		return 0, false
	}
	return uint(id), true
}

// List handles GET /diseases.
func (h *DiseaseHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	search := c.Query("search")

	records, err := h.store.List(limit, offset, search)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diseases": records, "count": len(records)})
}

// Get handles GET /diseases/:id.
func (h *DiseaseHandler) Get(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	record, err := h.store.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Disease not found", CodeDiseaseNotFound)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create handles POST /diseases. The body is a flat object: diseaseName and
// medicineMeasures are required strings, symptom flags are optional booleans
// and default to false. Unknown keys are ignored.
func (h *DiseaseHandler) Create(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}

	name, ok := body["diseaseName"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		respondError(c, http.StatusBadRequest, "Disease name is required", CodeMissingDiseaseName)
		return
	}
	measures, ok := body["medicineMeasures"].(string)
	if !ok || strings.TrimSpace(measures) == "" {
		respondError(c, http.StatusBadRequest, "Medicine measures are required", CodeMissingMedicineMeasures)
		return
	}

	record := database.Disease{
		DiseaseName:      strings.TrimSpace(name),
		MedicineMeasures: strings.TrimSpace(measures),
	}
	for key, value := range body {
		field, isSymptom := symptoms.Normalize(key)
		if !isSymptom {
			continue
		}
		flag, isBool := value.(bool)
		if !isBool {
			respondError(c, http.StatusBadRequest, "Symptom values must be boolean: "+key, CodeInvalidSymptomValue)
			return
		}
		record.SetSymptom(field, flag)
	}

	if err := h.store.Create(&record); err != nil {
		internalError(c, err)
		return
	}
	h.log.Info("disease created", "id", record.ID, "name", record.DiseaseName)
	c.JSON(http.StatusCreated, record)
}

// Update handles PUT /diseases/:id and PUT /diseases?id=. The body is a
// partial update: only the keys present are changed, each checked against its
// field type. updatedAt is refreshed even for an empty body.
func (h *DiseaseHandler) Update(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}

	updates := make(map[string]interface{}, len(body))
	for key, value := range body {
		switch key {
		case "diseaseName":
			name, isString := value.(string)
			if !isString || strings.TrimSpace(name) == "" {
				respondError(c, http.StatusBadRequest, "Disease name must be a non-empty string", CodeInvalidDiseaseName)
				return
			}
			updates["disease_name"] = strings.TrimSpace(name)
		case "medicineMeasures":
			measures, isString := value.(string)
			if !isString || strings.TrimSpace(measures) == "" {
				respondError(c, http.StatusBadRequest, "Medicine measures must be a non-empty string", CodeInvalidMedicineMeasures)
				return
			}
			updates["medicine_measures"] = strings.TrimSpace(measures)
		default:
			field, isSymptom := symptoms.Normalize(key)
			if !isSymptom {
				continue
			}
			flag, isBool := value.(bool)
			if !isBool {
				respondError(c, http.StatusBadRequest, "Symptom values must be boolean: "+key, CodeInvalidSymptomValue)
				return
			}
			updates[string(field)] = flag
		}
	}

	record, err := h.store.Update(id, updates)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Disease not found", CodeDiseaseNotFound)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /diseases/:id and DELETE /diseases?id=. The deleted
// record is returned.
func (h *DiseaseHandler) Delete(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	record, err := h.store.Delete(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Disease not found", CodeDiseaseNotFound)
			return
		}
		internalError(c, err)
		return
	}
	h.log.Info("disease deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Disease deleted successfully", "deleted": record})
}
