package linkmeta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// ErrNoBrowser is returned when no Chromium binary can be found.
var ErrNoBrowser = errors.New("rod browser dependency not found")

var descSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
}

// RodScraper renders pages in a headless browser, so script-built titles
// are seen too. The browser is launched on first use and reused until Close.
type RodScraper struct {
	log     logrus.FieldLogger
	timeout time.Duration

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodScraper returns a scraper that gives each page at most timeout.
func NewRodScraper(timeout time.Duration, logger logrus.FieldLogger) *RodScraper {
	return &RodScraper{
		log:     logger.WithField("component", "linkmeta"),
		timeout: timeout,
	}
}

func (s *RodScraper) connect() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		return s.browser, nil
	}
	path, ok := launcher.LookPath()
	if !ok {
		return nil, ErrNoBrowser
	}
	u, err := launcher.New().Bin(path).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.log.Debug("Rod browser launched")
	s.browser = b
	return b, nil
}

// Close shuts the shared browser down.
func (s *RodScraper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	return err
}

// ScrapeMetadata loads url and reads its title and meta description.
func (s *RodScraper) ScrapeMetadata(ctx context.Context, url string) (meta Metadata, err error) {
	log := s.log.WithField("url", url)

	browser, err := s.connect()
	if err != nil {
		return Metadata{}, err
	}

	pageCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := browser.Context(pageCtx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Error closing rod page")
		}
	}()

	if err := page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return Metadata{}, fmt.Errorf("scraping timed out for %s: %w", url, pageCtx.Err())
		}
		return Metadata{}, fmt.Errorf("failed waiting for page load: %w", err)
	}

	if info, err := page.Info(); err == nil {
		meta.Title = strings.TrimSpace(info.Title)
	}

	for _, sel := range descSelectors {
		els, err := page.Elements(sel)
		if err != nil || els.Empty() {
			continue
		}
		content, err := els.First().Attribute("content")
		if err != nil || content == nil {
			continue
		}
		if d := strings.TrimSpace(*content); d != "" {
			meta.Description = d
			break
		}
	}

	log.WithFields(logrus.Fields{"title": meta.Title, "has_description": meta.Description != ""}).Debug("Scraped metadata")
	return meta, nil
}
