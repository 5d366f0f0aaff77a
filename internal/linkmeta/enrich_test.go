package linkmeta

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"nextstep/internal/content"
	"nextstep/internal/domain"
)

type fakeScraper struct {
	pages map[string]Metadata
	calls []string
}

func (f *fakeScraper) ScrapeMetadata(_ context.Context, url string) (Metadata, error) {
	f.calls = append(f.calls, url)
	m, ok := f.pages[url]
	if !ok {
		return Metadata{}, errors.New("404")
	}
	return m, nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestEnrich(t *testing.T) {
	in := []domain.Resource{
		{ID: "a", Title: content.UntitledResource, URL: "https://a.example"},
		{ID: "b", Title: "Kept", Description: "Already there", URL: "https://b.example"},
		{ID: "c", Title: "Local", URL: "#"},
		{ID: "d", Title: "Broken", URL: "https://gone.example"},
		{ID: "e", Title: "Named", URL: "http://e.example"},
	}
	sc := &fakeScraper{pages: map[string]Metadata{
		"https://a.example": {Title: "A Guide", Description: "All about A"},
		"http://e.example":  {Title: "Ignored", Description: "E summary"},
	}}

	out, st := Enrich(context.Background(), in, sc, quietLogger())

	assert.Equal(t, []string{"https://a.example", "https://gone.example", "http://e.example"}, sc.calls)
	assert.Equal(t, Stats{Checked: 3, Enriched: 2, Failed: 1}, st)

	assert.Equal(t, "A Guide", out[0].Title)
	assert.Equal(t, "All about A", out[0].Description)
	assert.Equal(t, in[1], out[1])
	assert.Equal(t, in[3], out[3], "failures leave the row untouched")
	assert.Equal(t, "Named", out[4].Title, "authored titles are never replaced")
	assert.Equal(t, "E summary", out[4].Description)

	assert.Empty(t, in[0].Description, "input is not modified")
}

func TestEnrich_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &fakeScraper{}
	_, st := Enrich(ctx, []domain.Resource{{ID: "a", URL: "https://a.example"}}, sc, quietLogger())
	assert.Empty(t, sc.calls)
	assert.Zero(t, st.Checked)
}
