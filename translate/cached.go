package translate

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

type cacheKey struct {
	SourceLanguage string
	TargetLanguage string
	Text           string
}

// Cached wraps a Translator with an ARC cache. Front-desk traffic repeats a
// lot of short phrases, so identical requests skip the API entirely.
type Cached struct {
	inner Translator
	cache *lru.ARCCache
}

func NewCached(inner Translator, size int) (*Cached, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache}, nil
}

func (c *Cached) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	k := cacheKey{
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Text:           text,
	}
	if v, ok := c.cache.Get(k); ok {
		return v.(string), nil
	}
	translated, err := c.inner.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}
	c.cache.Add(k, translated)
	return translated, nil
}
