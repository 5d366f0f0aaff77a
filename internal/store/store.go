package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"nextstep/internal/storage"
)

// Fixed storage keys.
const (
	KeyBookmarks = "nsn_bookmarks"
	KeyRecent    = "nsn_recent"
	KeyVisits    = "nsn_visits"
	KeyName      = "nsn_name"
	KeyType      = "nsn_type"
)

// Default capacities.
const (
	DefaultRecentCap     = 8
	DefaultQuizRecentCap = 20
	DefaultBookmarkCap   = 200
	DefaultProfileTTL    = 12 * time.Hour
)

var (
	ErrEmptyID         = errors.New("bookmark entry has no id")
	ErrNothingToExport = errors.New("nothing to export")
)

// Options tunes a Store. Zero values take the defaults.
type Options struct {
	RecentCap   int
	BookmarkCap int
	ProfileTTL  time.Duration
}

func (o Options) withDefaults() Options {
	if o.RecentCap <= 0 {
		o.RecentCap = DefaultRecentCap
	}
	if o.BookmarkCap <= 0 {
		o.BookmarkCap = DefaultBookmarkCap
	}
	if o.ProfileTTL <= 0 {
		o.ProfileTTL = DefaultProfileTTL
	}
	return o
}

// Store owns the bookmarks, recents and per-visit profile of one namespace.
// Every mutation reads, modifies and writes back the whole collection, so a
// namespace must have a single mutator at a time.
type Store struct {
	repo storage.Repository
	ns   string
	opts Options
	log  logrus.FieldLogger
	now  func() time.Time

	listeners []func(key string)
}

// New binds a store to the namespace ns of repo.
func New(repo storage.Repository, ns string, opts Options, logger logrus.FieldLogger) *Store {
	return &Store{
		repo: repo,
		ns:   ns,
		opts: opts.withDefaults(),
		log:  logger.WithFields(logrus.Fields{"component": "store", "ns": ns}),
		now:  time.Now,
	}
}

// WithRecentCap returns a store sharing storage and listeners but using a
// different recents cap, as the quiz page does.
func (s *Store) WithRecentCap(n int) *Store {
	out := *s
	out.opts.RecentCap = n
	out.opts = out.opts.withDefaults()
	return &out
}

// Namespace is the storage namespace of this store.
func (s *Store) Namespace() string { return s.ns }

// OnChange registers fn to be called with the key of every collection that
// changes. Render adapters repaint from it.
func (s *Store) OnChange(fn func(key string)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(key string) {
	for _, fn := range s.listeners {
		fn(key)
	}
}

// readJSON decodes key into v. Missing keys leave v untouched; corrupt data
// is logged and reported as ok=false so callers can self-heal.
func (s *Store) readJSON(ctx context.Context, key string, v any) (ok bool) {
	data, err := s.repo.Load(ctx, s.ns, key)
	if errors.Is(err, storage.ErrNotFound) {
		return true
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Storage unavailable, using empty value")
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Corrupt stored value, resetting")
		return false
	}
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.repo.Save(ctx, s.ns, key, data, ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to persist value")
		return err
	}
	return nil
}

// SaveDraft stores v as JSON under nsn_{name}_draft.
func (s *Store) SaveDraft(ctx context.Context, name string, v any) error {
	return s.writeJSON(ctx, draftKey(name), v, 0)
}

// LoadDraft decodes the named draft into v. found is false when no draft
// exists; a corrupt draft is an error.
func (s *Store) LoadDraft(ctx context.Context, name string, v any) (found bool, err error) {
	data, err := s.repo.Load(ctx, s.ns, draftKey(name))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("could not load draft: %w", err)
	}
	return true, nil
}

func draftKey(name string) string {
	return "nsn_" + name + "_draft"
}
