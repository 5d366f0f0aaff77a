package domain

import "time"

// BookmarkEntry is a saved item shown in the bookmarks sidebar.
type BookmarkEntry struct {
	// ID identifies the bookmarked item and is the set key for toggling.
	ID string `json:"id"`

	// Label is the display text, e.g. the career title.
	Label string `json:"label"`

	// Href points back at the item, e.g. "careers.html?c=se".
	Href string `json:"href"`
}

// RecentEntry records a page or action the user visited recently.
// Entries are unique by (Label, Href).
type RecentEntry struct {
	Label string `json:"label"`
	Href  string `json:"href"`

	// TS is the push time in Unix milliseconds.
	TS int64 `json:"ts"`
}

// Time returns the push time.
func (r RecentEntry) Time() time.Time {
	return time.UnixMilli(r.TS)
}

// Key is the deduplication key of a recent entry.
func (r RecentEntry) Key() string {
	return r.Label + "::" + r.Href
}
