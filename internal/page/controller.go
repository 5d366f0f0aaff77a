// Package page holds the per-listing state that a render adapter drives:
// the loaded collection, the current query and the change subscribers.
package page

import (
	"context"
	"maps"
	"net/url"
	"slices"

	"nextstep/internal/domain"
	"nextstep/internal/query"
)

// RecentPusher records recent activity.
type RecentPusher interface {
	PushRecent(ctx context.Context, label, href string) error
}

// Options configures a Controller.
type Options struct {
	// Page names the listing in hrefs, e.g. "careers" gives
	// "careers.html?c={id}". Defaults to the query config name.
	Page string

	// UserType preselects the userType filter, usually from the profile.
	UserType string

	// Recents receives an entry whenever an item is opened. Optional.
	Recents RecentPusher
}

// Controller owns one listing. It is not safe for concurrent use.
type Controller[T domain.Item] struct {
	cfg   query.Config[T]
	items []T
	spec  query.Spec
	opts  Options

	subs   map[int]func(query.Result[T])
	nextID int
}

// New builds a controller over items with the config's default query.
func New[T domain.Item](cfg query.Config[T], items []T, opts Options) *Controller[T] {
	if opts.Page == "" {
		opts.Page = cfg.Name
	}
	c := &Controller[T]{
		cfg:   cfg,
		items: slices.Clone(items),
		opts:  opts,
		subs:  make(map[int]func(query.Result[T])),
	}
	c.spec = c.initialSpec()
	return c
}

func (c *Controller[T]) initialSpec() query.Spec {
	s := c.cfg.DefaultSpec()
	if c.opts.UserType != "" && c.cfg.UserType != nil {
		s = s.With(query.FilterUserType, c.opts.UserType)
	}
	return s
}

// Subscribe registers fn to receive the recomputed page after every state
// change. The returned func unsubscribes.
func (c *Controller[T]) Subscribe(fn func(query.Result[T])) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Controller[T]) changed() {
	if len(c.subs) == 0 {
		return
	}
	res := c.Result()
	for _, id := range slices.Sorted(maps.Keys(c.subs)) {
		c.subs[id](res)
	}
}

// Result runs the pipeline over the current state.
func (c *Controller[T]) Result() query.Result[T] {
	return c.cfg.Run(c.items, c.spec)
}

// Spec returns a copy of the current query.
func (c *Controller[T]) Spec() query.Spec { return c.spec.Clone() }

// Items returns the loaded collection.
func (c *Controller[T]) Items() []T { return c.items }

// Page is the listing name used in hrefs.
func (c *Controller[T]) Page() string { return c.opts.Page }

// SetItems replaces the collection, e.g. after a reload.
func (c *Controller[T]) SetItems(items []T) {
	c.items = slices.Clone(items)
	c.spec.Page = 1
	c.changed()
}

// SetQuery sets the free-text query and returns to the first page.
func (c *Controller[T]) SetQuery(q string) {
	c.spec.Query = q
	c.spec.Page = 1
	c.changed()
}

// SetFilter selects exactly values for a filter; no values clears it.
func (c *Controller[T]) SetFilter(name string, values ...string) {
	c.spec = c.spec.With(name, values...)
	c.spec.Page = 1
	c.changed()
}

// ToggleFilter adds or removes one value of a multi-select filter.
func (c *Controller[T]) ToggleFilter(name, value string) {
	c.spec = c.spec.Toggle(name, value)
	c.spec.Page = 1
	c.changed()
}

// SetRange sets the numeric bounds; nil is unbounded.
func (c *Controller[T]) SetRange(lower, upper *float64) {
	c.spec.Min, c.spec.Max = lower, upper
	c.spec.Page = 1
	c.changed()
}

// SetSort changes the sort mode. The page is kept.
func (c *Controller[T]) SetSort(mode string) {
	c.spec.Sort = mode
	c.changed()
}

// SetPage jumps to a 1-indexed page.
func (c *Controller[T]) SetPage(p int) {
	c.spec.Page = p
	c.changed()
}

// SetPageSize changes the page size and returns to the first page.
func (c *Controller[T]) SetPageSize(n int) {
	c.spec.PageSize = n
	c.spec.Page = 1
	c.changed()
}

// NextPage advances unless already on the last page.
func (c *Controller[T]) NextPage() bool {
	if c.spec.Page >= c.Result().TotalPages {
		return false
	}
	c.SetPage(c.spec.Page + 1)
	return true
}

// PrevPage steps back unless on the first page.
func (c *Controller[T]) PrevPage() bool {
	if c.spec.Page <= 1 {
		return false
	}
	c.SetPage(c.spec.Page - 1)
	return true
}

// Clear resets the query to the config defaults, dropping any preselection.
func (c *Controller[T]) Clear() {
	c.spec = c.cfg.DefaultSpec()
	c.changed()
}

// Find looks an item up by id.
func (c *Controller[T]) Find(id string) (T, bool) {
	i := slices.IndexFunc(c.items, func(it T) bool { return it.ItemID() == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Href links back to an item of this listing.
func (c *Controller[T]) Href(id string) string {
	return c.opts.Page + ".html?c=" + url.QueryEscape(id)
}

// Entry builds the bookmark entry for an item.
func (c *Controller[T]) Entry(it T) domain.BookmarkEntry {
	return domain.BookmarkEntry{ID: it.ItemID(), Label: it.Label(), Href: c.Href(it.ItemID())}
}

// Open returns the item with id and records it as recently viewed.
func (c *Controller[T]) Open(ctx context.Context, id string) (T, bool, error) {
	it, ok := c.Find(id)
	if !ok {
		return it, false, nil
	}
	if c.opts.Recents != nil {
		if err := c.opts.Recents.PushRecent(ctx, it.Label(), c.Href(id)); err != nil {
			return it, true, err
		}
	}
	return it, true, nil
}

// Facets lists the distinct values of get over the whole collection.
func (c *Controller[T]) Facets(get func(T) string) []string {
	return query.Facets(c.items, get)
}
