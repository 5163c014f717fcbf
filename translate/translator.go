// Package translate defines the text translation collaborator interface, its
// Google Cloud Translate implementation and a caching decorator.
package translate

import "context"

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
