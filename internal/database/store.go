// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sympmatch/sympmatch/internal/symptoms"
)

// Sentinel errors surfaced by the store. Handlers map these to the HTTP error
// taxonomy; everything else is treated as an internal failure.
var (
	ErrNotFound           = errors.New("disease not found")
	ErrInvalidSymptomName = errors.New("invalid symptom name")
)

const (
	// DefaultLimit is the page size used when the caller does not provide one.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Store provides access to the disease record table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store backed by the given gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns a page of disease records ordered by creation, optionally
// filtered by a case-insensitive substring match on the disease name.
// limit is capped at MaxLimit and defaults to DefaultLimit when <= 0; a
// negative offset is treated as 0. An offset past the end returns an empty
// page, not an error.
func (s *Store) List(limit, offset int, search string) ([]Disease, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.Order("created_at, id")
	if search != "" {
		query = query.Where("disease_name LIKE ?", "%"+search+"%")
	}

	var records []Disease
	if err := query.Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	return records, nil
}

// GetByID returns a single record or ErrNotFound.
func (s *Store) GetByID(id uint) (*Disease, error) {
	var record Disease
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get disease %d: %w", id, err)
	}
	return &record, nil
}

// Create inserts a new record. The store assigns the id and timestamps.
func (s *Store) Create(record *Disease) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create disease: %w", err)
	}
	return nil
}

// Update applies a partial update to the record with the given id and returns
// the updated record. The updates map uses database column names. updatedAt is
// always refreshed, even for an empty update; id and createdAt are immutable.
func (s *Store) Update(id uint, updates map[string]interface{}) (*Disease, error) {
	record, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "id")
	delete(updates, "created_at")
	updates["updated_at"] = time.Now()

	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update disease %d: %w", id, err)
	}
	return s.GetByID(id)
}

// Delete removes the record with the given id and returns the deleted record,
// or ErrNotFound.
func (s *Store) Delete(id uint) (*Disease, error) {
	record, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(record).Error; err != nil {
		return nil, fmt.Errorf("failed to delete disease %d: %w", id, err)
	}
	return record, nil
}

// FindBySymptoms returns the records on which every requested symptom field is
// true (conjunctive match), ordered by creation time.
//
// An empty field set returns all records in creation order; this is the
// documented fallback of the search endpoint, not a "match nothing". A field
// identifier outside the canonical set fails fast with ErrInvalidSymptomName.
func (s *Store) FindBySymptoms(fields []symptoms.Field) ([]Disease, error) {
	query := s.db.Order("created_at, id")
	for _, f := range fields {
		if !symptoms.IsField(string(f)) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSymptomName, f)
		}
		// Field names are validated against the canonical set above, so they
		// are safe to interpolate as column names.
		query = query.Where(fmt.Sprintf("%s = ?", f), true)
	}

	var records []Disease
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find diseases by symptoms: %w", err)
	}
	return records, nil
}

// Count returns the number of disease records.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&Disease{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count diseases: %w", err)
	}
	return n, nil
}
