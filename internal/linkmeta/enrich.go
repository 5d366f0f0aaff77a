package linkmeta

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"nextstep/internal/content"
	"nextstep/internal/domain"
)

// Stats summarizes an Enrich pass.
type Stats struct {
	Checked  int
	Enriched int
	Failed   int
}

func needsMetadata(r domain.Resource) bool {
	if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return false
	}
	return r.Description == "" || r.Title == content.UntitledResource
}

// Enrich returns a copy of resources where rows with an http(s) URL and a
// missing title or description are filled from the linked page. Scrape
// failures leave the row untouched. Rows are scraped one at a time and the
// pass stops early when ctx is done.
func Enrich(ctx context.Context, resources []domain.Resource, sc Scraper, logger logrus.FieldLogger) ([]domain.Resource, Stats) {
	log := logger.WithField("component", "linkmeta")
	out := make([]domain.Resource, len(resources))
	copy(out, resources)

	var st Stats
	for i, r := range out {
		if ctx.Err() != nil {
			break
		}
		if !needsMetadata(r) {
			continue
		}
		st.Checked++
		meta, err := sc.ScrapeMetadata(ctx, r.URL)
		if err != nil {
			st.Failed++
			log.WithError(err).WithField("id", r.ID).Warn("Could not fetch link metadata")
			continue
		}
		changed := false
		if r.Title == content.UntitledResource && meta.Title != "" {
			out[i].Title = meta.Title
			changed = true
		}
		if r.Description == "" && meta.Description != "" {
			out[i].Description = meta.Description
			changed = true
		}
		if changed {
			st.Enriched++
		}
	}
	return out, st
}
