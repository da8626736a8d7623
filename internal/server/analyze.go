// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/matching"
	"github.com/sympmatch/sympmatch/internal/voice"
)

// AnalyzeHandler serves the free-text and voice analysis endpoints.
// transcriber may be nil when voice input is disabled.
type AnalyzeHandler struct {
	analyzer    *matching.Analyzer
	transcriber voice.Transcriber
	log         *logger.Logger
}

// NewAnalyzeHandler creates an analyze handler.
func NewAnalyzeHandler(analyzer *matching.Analyzer, transcriber voice.Transcriber, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		transcriber: transcriber,
		log:         log.With("component", "server.analyze"),
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type voiceAnalyzeRequest struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
}

// Analyze handles POST /analyze with body {"text": "..."}.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}
	h.run(c, req.Text, "")
}

// AnalyzeVoice handles POST /analyze/voice with body
// {"audio": "<base64>", "mimeType": "audio/wav"}: the audio is transcribed
// and the transcript goes through the same pipeline as typed text.
func (h *AnalyzeHandler) AnalyzeVoice(c *gin.Context) {
	if h.transcriber == nil {
		respondError(c, http.StatusServiceUnavailable, "Voice input is not enabled", CodeVoiceDisabled)
		return
	}

	var req voiceAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON)
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(audio) == 0 {
		respondError(c, http.StatusBadRequest, "Audio must be non-empty base64", "")
		return
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), audio, req.MimeType)
	if err != nil {
		internalError(c, err)
		return
	}
	h.log.Info("voice transcript", "length", len(transcript))
	h.run(c, transcript, transcript)
}

func (h *AnalyzeHandler) run(c *gin.Context, text, transcript string) {
	analysis, err := h.analyzer.Analyze(c.Request.Context(), strings.TrimSpace(text))
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrBusy):
			respondError(c, http.StatusConflict, "An analysis is already in progress", CodeAnalysisInProgress)
		case errors.Is(err, matching.ErrEmptyQuery):
			respondError(c, http.StatusBadRequest, "Please describe your symptoms", "")
		default:
			internalError(c, err)
		}
		return
	}

	if transcript != "" {
		c.JSON(http.StatusOK, gin.H{"transcript": transcript, "analysis": analysis})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
