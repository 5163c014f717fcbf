package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingTranslator struct {
	calls int
	err   error
}

func (c *countingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return targetLang + ":" + text, nil
}

func TestCachedTranslate(t *testing.T) {
	inner := &countingTranslator{}
	cached, err := NewCached(inner, 16)
	assert.NoError(t, err)

	ctx := context.Background()
	res, err := cached.Translate(ctx, "hello", "en-US", "bn-IN")
	assert.NoError(t, err)
	assert.Equal(t, "bn-IN:hello", res)
	assert.Equal(t, 1, inner.calls)

	// identical request is served from the cache
	res, err = cached.Translate(ctx, "hello", "en-US", "bn-IN")
	assert.NoError(t, err)
	assert.Equal(t, "bn-IN:hello", res)
	assert.Equal(t, 1, inner.calls)

	// a different target is a different key
	_, err = cached.Translate(ctx, "hello", "en-US", "ta-IN")
	assert.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	inner := &countingTranslator{err: errors.New("boom")}
	cached, err := NewCached(inner, 16)
	assert.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Translate(ctx, "hello", "en-US", "bn-IN")
	assert.Error(t, err)

	inner.err = nil
	res, err := cached.Translate(ctx, "hello", "en-US", "bn-IN")
	assert.NoError(t, err)
	assert.Equal(t, "bn-IN:hello", res)
	assert.Equal(t, 2, inner.calls)
}
