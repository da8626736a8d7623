// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"time"

	"github.com/sympmatch/sympmatch/internal/symptoms"
)

// Disease represents a disease record with its treatment text and the twelve
// canonical boolean symptom flags. Database columns are snake_case; the JSON
// view uses the camelCase vocabulary of the HTTP API.
type Disease struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	DiseaseName      string    `gorm:"column:disease_name;not null" json:"diseaseName"`
	MedicineMeasures string    `gorm:"column:medicine_measures;not null" json:"medicineMeasures"`

	Fever          bool `gorm:"column:fever;default:false" json:"fever"`
	Headache       bool `gorm:"column:headache;default:false" json:"headache"`
	Cough          bool `gorm:"column:cough;default:false" json:"cough"`
	Nausea         bool `gorm:"column:nausea;default:false" json:"nausea"`
	Vomiting       bool `gorm:"column:vomiting;default:false" json:"vomiting"`
	ChestPain      bool `gorm:"column:chest_pain;default:false" json:"chestPain"`
	Breathlessness bool `gorm:"column:breathlessness;default:false" json:"breathlessness"`
	AbdominalPain  bool `gorm:"column:abdominal_pain;default:false" json:"abdominalPain"`
	SoreThroat     bool `gorm:"column:sore_throat;default:false" json:"soreThroat"`
	RunnyNose      bool `gorm:"column:runny_nose;default:false" json:"runnyNose"`
	BodyAches      bool `gorm:"column:body_aches;default:false" json:"bodyAches"`
	Sweating       bool `gorm:"column:sweating;default:false" json:"sweating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Disease
func (Disease) TableName() string {
	return "diseases"
}

// HasSymptom reports whether the given canonical symptom flag is set.
func (d *Disease) HasSymptom(f symptoms.Field) bool {
	switch f {
	case symptoms.Fever:
		return d.Fever
	case symptoms.Headache:
		return d.Headache
	case symptoms.Cough:
		return d.Cough
	case symptoms.Nausea:
		return d.Nausea
	case symptoms.Vomiting:
		return d.Vomiting
	case symptoms.ChestPain:
		return d.ChestPain
	case symptoms.Breathlessness:
		return d.Breathlessness
	case symptoms.AbdominalPain:
		return d.AbdominalPain
	case symptoms.SoreThroat:
		return d.SoreThroat
	case symptoms.RunnyNose:
		return d.RunnyNose
	case symptoms.BodyAches:
		return d.BodyAches
	case symptoms.Sweating:
		return d.Sweating
	}
	return false
}

// SetSymptom sets the given canonical symptom flag.
func (d *Disease) SetSymptom(f symptoms.Field, v bool) {
	switch f {
	case symptoms.Fever:
		d.Fever = v
	case symptoms.Headache:
		d.Headache = v
	case symptoms.Cough:
		d.Cough = v
	case symptoms.Nausea:
		d.Nausea = v
	case symptoms.Vomiting:
		d.Vomiting = v
	case symptoms.ChestPain:
		d.ChestPain = v
	case symptoms.Breathlessness:
		d.Breathlessness = v
	case symptoms.AbdominalPain:
		d.AbdominalPain = v
	case symptoms.SoreThroat:
		d.SoreThroat = v
	case symptoms.RunnyNose:
		d.RunnyNose = v
	case symptoms.BodyAches:
		d.BodyAches = v
	case symptoms.Sweating:
		d.Sweating = v
	}
}

// TrueSymptoms returns the canonical fields set true on the record, in
// canonical order.
func (d *Disease) TrueSymptoms() []symptoms.Field {
	var fields []symptoms.Field
	for _, f := range symptoms.AllFields() {
		if d.HasSymptom(f) {
			fields = append(fields, f)
		}
	}
	return fields
}
