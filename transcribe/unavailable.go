package transcribe

import (
	"context"
	"errors"
)

// Unavailable is used when no speech backend is configured. Every call fails,
// which surfaces to clients as a per-message error event.
type Unavailable struct{}

func (Unavailable) Transcribe(ctx context.Context, audio []byte, languageCode string) (Result, error) {
	return Result{}, errors.New("transcription service is not configured")
}
