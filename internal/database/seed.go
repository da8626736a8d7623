// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import "fmt"

// seedDiseases is the built-in starter dataset, loaded when the table is
// empty. Treatments are general reference text, not medical advice.
var seedDiseases = []Disease{
	{
		DiseaseName:      "Common Cold",
		MedicineMeasures: "Rest, fluids, decongestants, throat lozenges",
		Cough:            true,
		SoreThroat:       true,
		RunnyNose:        true,
		Headache:         true,
	},
	{
		DiseaseName:      "Influenza",
		MedicineMeasures: "Rest and fluids, antiviral medication if started early, antipyretics",
		Fever:            true,
		Headache:         true,
		Cough:            true,
		BodyAches:        true,
		Sweating:         true,
	},
	{
		DiseaseName:      "Migraine",
		MedicineMeasures: "Triptans, NSAIDs, rest in a dark quiet room",
		Headache:         true,
		Nausea:           true,
		Vomiting:         true,
	},
	{
		DiseaseName:      "Food Poisoning",
		MedicineMeasures: "Oral rehydration, bland diet, antiemetics if needed",
		Nausea:           true,
		Vomiting:         true,
		AbdominalPain:    true,
	},
	{
		DiseaseName:      "Pneumonia",
		MedicineMeasures: "Antibiotics, rest, fluids, oxygen therapy in severe cases",
		Fever:            true,
		Cough:            true,
		ChestPain:        true,
		Breathlessness:   true,
		Sweating:         true,
	},
	{
		DiseaseName:      "Gastritis",
		MedicineMeasures: "Antacids, proton pump inhibitors, avoid irritant foods",
		Nausea:           true,
		AbdominalPain:    true,
		Vomiting:         true,
	},
	{
		DiseaseName:      "Angina",
		MedicineMeasures: "Nitroglycerin, beta blockers, urgent medical evaluation",
		ChestPain:        true,
		Breathlessness:   true,
		Sweating:         true,
	},
	{
		DiseaseName:      "Strep Throat",
		MedicineMeasures: "Antibiotics, analgesics, warm salt water gargles",
		Fever:            true,
		SoreThroat:       true,
		Headache:         true,
	},
	{
		DiseaseName:      "Allergic Rhinitis",
		MedicineMeasures: "Antihistamines, decongestants, nasal corticosteroids",
		RunnyNose:        true,
		Cough:            true,
	},
	{
		DiseaseName:      "Dengue Fever",
		MedicineMeasures: "Fluids, paracetamol, close monitoring; avoid NSAIDs",
		Fever:            true,
		Headache:         true,
		BodyAches:        true,
		Nausea:           true,
		Vomiting:         true,
	},
	{
		DiseaseName:      "GERD",
		MedicineMeasures: "Proton pump inhibitors, H2 blockers, dietary changes",
		ChestPain:        true,
		Nausea:           true,
	},
	{
		DiseaseName:      "Asthma",
		MedicineMeasures: "Inhaled bronchodilators, inhaled corticosteroids, trigger avoidance",
		Cough:            true,
		Breathlessness:   true,
		ChestPain:        true,
	},
}

// Seed loads the built-in dataset if the diseases table is empty. Returns the
// number of records inserted.
func (s *Store) Seed() (int, error) {
	count, err := s.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range seedDiseases {
		record := seedDiseases[i]
		if err := s.Create(&record); err != nil {
			return 0, fmt.Errorf("failed to seed diseases: %w", err)
		}
	}
	return len(seedDiseases), nil
}
