// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package voice

import (
	"context"

	"github.com/sympmatch/sympmatch/internal/logger"
)

// LogSpeaker is the server-side Speaker: synthesis happens in the client, so
// the server records what was narrated and nothing more.
type LogSpeaker struct {
	log *logger.Logger
}

// NewLogSpeaker creates a speaker that logs narrations.
func NewLogSpeaker(log *logger.Logger) *LogSpeaker {
	return &LogSpeaker{log: log.With("component", "voice.speaker")}
}

// Speak implements Speaker.
func (s *LogSpeaker) Speak(_ context.Context, text string) error {
	s.log.Info("narrating result", "text", text)
	return nil
}
