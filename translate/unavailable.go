package translate

import (
	"context"
	"errors"
)

// Unavailable is used when no translation backend is configured. Every call
// fails, which surfaces to clients as a per-message error event.
type Unavailable struct{}

func (Unavailable) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return "", errors.New("translation service is not configured")
}
