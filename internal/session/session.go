// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const (
	// RecentSearchesKey is the fixed storage key for the recent-search list.
	RecentSearchesKey = "diagnosis-recent-searches"
	// SavedNotesKey is the fixed storage key for the saved-notes log.
	SavedNotesKey = "diagnosis-saved-notes"
	// MaxRecentSearches caps the recent-search history.
	MaxRecentSearches = 5
)

// Note is one append-only saved-note entry. The log has no dedup and no
// length cap.
type Note struct {
	DiseaseName      string    `json:"diseaseName"`
	MedicineMeasures string    `json:"medicineMeasures"`
	MatchedSymptoms  []string  `json:"matchedSymptoms"`
	Timestamp        time.Time `json:"timestamp"`
}

// Manager holds per-session state: the recent-search history and the
// saved-notes log. State is loaded once at construction and the backing store
// is rewritten wholesale on every mutation.
type Manager struct {
	mu       sync.Mutex
	kv       KeyValueStore
	searches []string
	notes    []Note
}

// NewManager creates a manager and loads existing state from the store.
func NewManager(ctx context.Context, kv KeyValueStore) (*Manager, error) {
	m := &Manager{kv: kv}

	if err := m.load(ctx, RecentSearchesKey, &m.searches); err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}
	if err := m.load(ctx, SavedNotesKey, &m.notes); err != nil {
		return nil, fmt.Errorf("failed to load saved notes: %w", err)
	}
	return m, nil
}

func (m *Manager) load(ctx context.Context, key string, dst interface{}) error {
	raw, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("corrupt value under %s: %w", key, err)
	}
	return nil
}

// RecordSearch adds a query to the front of the recent-search list. A query
// already present moves to the front instead of duplicating, and the list is
// truncated to MaxRecentSearches.
func (m *Manager) RecordSearch(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := make([]string, 0, len(m.searches)+1)
	updated = append(updated, text)
	for _, s := range m.searches {
		if s != text {
			updated = append(updated, s)
		}
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}
	m.searches = updated

	return m.save(ctx, RecentSearchesKey, m.searches)
}

// DeleteSearch removes a query from the recent-search list by value. Removing
// an absent query is a no-op.
func (m *Manager) DeleteSearch(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := m.searches[:0:0]
	for _, s := range m.searches {
		if s != text {
			updated = append(updated, s)
		}
	}
	m.searches = updated

	return m.save(ctx, RecentSearchesKey, m.searches)
}

// Searches returns the recent-search list, most recent first.
func (m *Manager) Searches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.searches))
	copy(out, m.searches)
	return out
}

// AddNote appends a note to the saved-notes log.
func (m *Manager) AddNote(ctx context.Context, note Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes = append(m.notes, note)
	return m.save(ctx, SavedNotesKey, m.notes)
}

// Notes returns the saved-notes log in insertion order.
func (m *Manager) Notes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Note, len(m.notes))
	copy(out, m.notes)
	return out
}

func (m *Manager) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := m.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
