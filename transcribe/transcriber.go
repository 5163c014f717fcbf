// Package transcribe defines the speech-to-text collaborator interface and its
// Google Cloud Speech implementation.
package transcribe

import "context"

// Result is one transcription outcome. Confidence is 0 if the service did not
// report one, callers apply their own default.
type Result struct {
	Transcript string
	Confidence float64
}

// Transcriber converts raw audio in the given source language into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, languageCode string) (Result, error)
}
