// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/session"
	"github.com/sympmatch/sympmatch/internal/symptoms"
	"github.com/sympmatch/sympmatch/internal/voice"
)

// Stage names the steps of an analysis request. A request walks
// Idle -> Extracting -> Mapping -> Querying -> Scoring -> Presenting;
// an error at any stage drops back to Idle with no partial results.
type Stage string

// Analysis stages
const (
	StageIdle       Stage = "idle"
	StageExtracting Stage = "extracting"
	StageMapping    Stage = "mapping"
	StageQuerying   Stage = "querying"
	StageScoring    Stage = "scoring"
	StagePresenting Stage = "presenting"
)

var (
	// ErrEmptyQuery is returned for empty or whitespace-only input.
	ErrEmptyQuery = errors.New("no symptoms described")
	// ErrBusy is returned when an analysis is already in flight. Requests are
	// rejected rather than queued or cancelled.
	ErrBusy = errors.New("analysis already in progress")
)

// RecordFinder is the slice of the record store the analyzer needs.
type RecordFinder interface {
	FindBySymptoms(fields []symptoms.Field) ([]database.Disease, error)
}

// Analysis is the outcome of one analysis request.
type Analysis struct {
	Query    string           `json:"query"`
	Keywords []string         `json:"-"`
	Fields   []symptoms.Field `json:"matchedFields"`
	Results  []MatchResult    `json:"results"`
	Summary  string           `json:"summary"`
}

// Analyzer drives the full matching pipeline: extract keywords, map them to
// canonical fields, query the store, score and rank, persist the search and
// dispatch the narrated summary.
type Analyzer struct {
	store        RecordFinder
	sessions     *session.Manager
	speaker      voice.Speaker
	log          *logger.Logger
	maxResults   int
	speakResults bool

	busy  atomic.Bool
	stage atomic.Value // Stage
}

// NewAnalyzer wires up the pipeline. speaker may be nil when narration is
// disabled.
func NewAnalyzer(store RecordFinder, sessions *session.Manager, speaker voice.Speaker, log *logger.Logger, maxResults int, speakResults bool) *Analyzer {
	a := &Analyzer{
		store:        store,
		sessions:     sessions,
		speaker:      speaker,
		log:          log.With("component", "matching.analyzer"),
		maxResults:   maxResults,
		speakResults: speakResults,
	}
	a.stage.Store(StageIdle)
	return a
}

// Stage returns the stage the analyzer is currently in.
func (a *Analyzer) Stage() Stage {
	return a.stage.Load().(Stage)
}

// Analyze runs one analysis request over free-text symptom input.
//
// A second submission while one is in flight fails with ErrBusy. Unmapped or
// empty keyword sets do not fall through to the store's return-all behavior:
// an empty extraction is ErrEmptyQuery, and keywords that map to no canonical
// field produce an empty result list with the no-match summary.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer func() {
		a.busy.Store(false)
		a.stage.Store(StageIdle)
	}()

	a.stage.Store(StageExtracting)
	keywords := symptoms.Extract(text)
	if len(keywords) == 0 {
		return nil, ErrEmptyQuery
	}

	a.stage.Store(StageMapping)
	fields := symptoms.SortedFields(symptoms.MapToFields(keywords))

	analysis := &Analysis{
		Query:    text,
		Keywords: sortedKeywords(keywords),
		Fields:   fields,
	}

	if len(fields) == 0 {
		// Nothing recognizable: an empty result, not the all-records fallback.
		a.stage.Store(StagePresenting)
		analysis.Results = []MatchResult{}
		analysis.Summary = voice.Summarize(nil)
		a.finish(ctx, analysis)
		return analysis, nil
	}

	a.stage.Store(StageQuerying)
	records, err := a.store.FindBySymptoms(fields)
	if err != nil {
		return nil, fmt.Errorf("symptom query failed: %w", err)
	}

	a.stage.Store(StageScoring)
	results := Score(records, keywords)
	if len(results) > a.maxResults {
		results = results[:a.maxResults]
	}

	a.stage.Store(StagePresenting)
	analysis.Results = results
	analysis.Summary = voice.Summarize(narratable(results))
	a.finish(ctx, analysis)

	return analysis, nil
}

// finish handles the side effects of a completed analysis: the search is
// recorded in the session history and the summary is narrated. Neither
// failure invalidates the result, so both are logged and swallowed.
func (a *Analyzer) finish(ctx context.Context, analysis *Analysis) {
	if a.sessions != nil {
		if err := a.sessions.RecordSearch(ctx, analysis.Query); err != nil {
			a.log.Warn("failed to record search", "error", err)
		}
	}
	if a.speakResults && a.speaker != nil {
		if err := a.speaker.Speak(ctx, analysis.Summary); err != nil {
			a.log.Warn("failed to narrate summary", "error", err)
		}
	}
}

func narratable(results []MatchResult) []voice.Result {
	out := make([]voice.Result, 0, len(results))
	for _, r := range results {
		out = append(out, voice.Result{
			DiseaseName:      r.Disease.DiseaseName,
			MedicineMeasures: r.Disease.MedicineMeasures,
			Score:            r.Score,
		})
	}
	return out
}

func sortedKeywords(keywords map[string]struct{}) []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
