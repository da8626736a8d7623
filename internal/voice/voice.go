// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package voice isolates the matching engine from any particular speech
// runtime. The engine only ever asks to transcribe audio to text or to hand a
// narration string to a speaker; everything else is a collaborator concern.
package voice

import "context"

// Transcriber converts recorded audio to text.
type Transcriber interface {
	// Transcribe returns the recognized text for the audio blob. The mime
	// type hints at the encoding ("audio/wav", "audio/ogg", ...). Cancelling
	// the context aborts the recognition.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Close() error
}

// Speaker hands a narration string to the voice-output collaborator.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
