// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package voice

import (
	"fmt"
	"math"
)

// Result is the slice of a ranked match the dispatcher needs for narration.
type Result struct {
	DiseaseName      string
	MedicineMeasures string
	Score            float64 // in [0,1]
}

// NoMatchMessage is narrated when an analysis finds nothing.
const NoMatchMessage = "No clear pattern matches found. The symptoms may be " +
	"uncommon or require further medical evaluation. Please consult a " +
	"healthcare provider for accurate diagnosis."

const disclaimer = "Please consult a healthcare provider for proper diagnosis and treatment."

// Summarize turns a ranked result list into the narration string handed to
// the voice-output collaborator. It names the top result, rounds its score to
// an integer percentage and quotes its treatment text; the dispatcher itself
// performs no I/O.
func Summarize(results []Result) string {
	if len(results) == 0 {
		return NoMatchMessage
	}

	top := results[0]
	pct := int(math.Round(top.Score * 100))
	return fmt.Sprintf(
		"Based on pattern analysis, the most likely condition is %s with %d%% similarity. Recommended treatment: %s. %s",
		top.DiseaseName, pct, top.MedicineMeasures, disclaimer,
	)
}
