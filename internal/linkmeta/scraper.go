// Package linkmeta fills in missing resource titles and descriptions from
// the pages they link to.
package linkmeta

import "context"

// Metadata is what a page says about itself.
type Metadata struct {
	Title       string
	Description string
}

// Scraper fetches page metadata for a URL.
type Scraper interface {
	ScrapeMetadata(ctx context.Context, url string) (Metadata, error)
}
