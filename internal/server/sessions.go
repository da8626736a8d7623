// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/session"
)

// SessionHandler serves the recent-search history and saved-notes endpoints.
type SessionHandler struct {
	sessions *session.Manager
	log      *logger.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(sessions *session.Manager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: log.With("component", "server.sessions")}
}

// ListSearches handles GET /searches.
func (h *SessionHandler) ListSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"searches": h.sessions.Searches()})
}

type deleteSearchRequest struct {
	Text string `json:"text"`
}

// DeleteSearch handles DELETE /searches with body {"text": "..."}. Deleting a
// query not in the history is a no-op, not an error.
func (h *SessionHandler) DeleteSearch(c *gin.Context) {
	var req deleteSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		respondError(c, http.StatusBadRequest, "Request body must contain the search text", CodeInvalidJSON)
		return
	}

	if err := h.sessions.DeleteSearch(c.Request.Context(), req.Text); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": h.sessions.Searches()})
}

// AddNote handles POST /notes. The notes log is append-only: resubmitting the
// same disease adds another entry.
func (h *SessionHandler) AddNote(c *gin.Context) {
	var note session.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}
	if strings.TrimSpace(note.DiseaseName) == "" {
		respondError(c, http.StatusBadRequest, "Disease name is required", CodeMissingDiseaseName)
		return
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now()
	}

	if err := h.sessions.AddNote(c.Request.Context(), note); err != nil {
		internalError(c, err)
		return
	}
	h.log.Info("note saved", "disease", note.DiseaseName)
	c.JSON(http.StatusCreated, note)
}

// ListNotes handles GET /notes.
func (h *SessionHandler) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": h.sessions.Notes()})
}
