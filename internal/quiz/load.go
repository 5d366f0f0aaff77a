package quiz

import (
	"context"

	"nextstep/internal/content"
)

// LoadBank fetches quiz.json, falling back to the built-in bank when the
// document is unavailable. A fetched bank with a broken alias is an error;
// it is never silently replaced by the fallback.
func LoadBank(ctx context.Context, l *content.Loader) (*Bank, string, error) {
	doc, notice := l.Load(ctx, content.QuizDoc, FallbackDocument())
	b, err := ParseBank(doc)
	if err != nil {
		return nil, notice, err
	}
	return b, notice, nil
}
