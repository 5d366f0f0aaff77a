package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// maxDocumentSize bounds a single content document.
const maxDocumentSize = 8 << 20

// ErrNotFound is wrapped by Fetch when the server answers 404.
var ErrNotFound = errors.New("document not found")

// Loader fetches content documents from a base URL or directory.
// Documents ending in .yaml or .yml are decoded as YAML, everything else as JSON.
type Loader struct {
	base    string
	timeout time.Duration
	client  *http.Client
	log     logrus.FieldLogger
}

// NewLoader creates a loader rooted at base, which is either an http(s) URL
// or a local directory.
func NewLoader(base string, timeout time.Duration, logger logrus.FieldLogger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		base:    base,
		timeout: timeout,
		client:  &http.Client{},
		log:     logger.WithField("component", "content_loader"),
	}
}

// Fetch retrieves and decodes one document. A timeout is reported as an
// ordinary error.
func (l *Loader) Fetch(ctx context.Context, name string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		data []byte
		err  error
	)
	if l.remote() {
		data, err = l.get(ctx, strings.TrimRight(l.base, "/")+"/"+strings.TrimLeft(name, "/"))
	} else {
		data, err = l.read(ctx, filepath.Join(l.base, filepath.FromSlash(name)))
	}
	if err != nil {
		return nil, err
	}
	return decode(name, data)
}

// Load is Fetch with graceful degradation: on any failure it logs, returns
// fallback and a message suitable for showing inline. A missing .json
// document is looked up again as .yaml and then .yml.
func (l *Loader) Load(ctx context.Context, name string, fallback any) (doc any, notice string) {
	doc, err := l.Fetch(ctx, name)
	if missing(err) {
		for _, alt := range yamlVariants(name) {
			d, altErr := l.Fetch(ctx, alt)
			if altErr == nil {
				doc, err = d, nil
				break
			}
			if !missing(altErr) {
				err = altErr
				break
			}
		}
	}
	if err != nil {
		l.log.WithError(err).WithField("document", name).Warn("Failed to load content, using fallback")
		return fallback, fmt.Sprintf("Could not load %s. %v.", name, err)
	}
	return doc, ""
}

func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound)
}

func yamlVariants(name string) []string {
	ext := path.Ext(name)
	if !strings.EqualFold(ext, ".json") {
		return nil
	}
	stem := strings.TrimSuffix(name, ext)
	return []string{stem + ".yaml", stem + ".yml"}
}

func (l *Loader) remote() bool {
	return strings.HasPrefix(l.base, "http://") || strings.HasPrefix(l.base, "https://")
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("fetching %s timed out: %w", url, ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("HTTP %d: %w", resp.StatusCode, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

func (l *Loader) read(ctx context.Context, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

func decode(name string, data []byte) (any, error) {
	var doc any
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	return doc, nil
}
