package store

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"nextstep/internal/domain"
)

// ListBookmarks returns the saved bookmarks, newest first. It never fails:
// missing or corrupt data reads as an empty list.
func (s *Store) ListBookmarks(ctx context.Context) []domain.BookmarkEntry {
	var list []domain.BookmarkEntry
	if !s.readJSON(ctx, KeyBookmarks, &list) {
		return []domain.BookmarkEntry{}
	}
	if list == nil {
		return []domain.BookmarkEntry{}
	}
	return list
}

// IsBookmarked reports whether id is in the bookmark list.
func (s *Store) IsBookmarked(ctx context.Context, id string) bool {
	return slices.ContainsFunc(s.ListBookmarks(ctx), func(b domain.BookmarkEntry) bool { return b.ID == id })
}

// ToggleBookmark removes e when its id is present, otherwise inserts it at
// the front. It reports whether e is bookmarked afterwards.
func (s *Store) ToggleBookmark(ctx context.Context, e domain.BookmarkEntry) (bool, error) {
	if strings.TrimSpace(e.ID) == "" {
		return false, ErrEmptyID
	}
	list := s.ListBookmarks(ctx)
	added := true
	if i := slices.IndexFunc(list, func(b domain.BookmarkEntry) bool { return b.ID == e.ID }); i >= 0 {
		list = slices.Delete(list, i, i+1)
		added = false
	} else {
		list = slices.Insert(list, 0, e)
	}
	if err := s.saveBookmarks(ctx, list); err != nil {
		return !added, err
	}
	return added, nil
}

// AddBookmarks inserts every entry that is not yet bookmarked, keeping the
// given order at the front. Existing bookmarks are left in place. It returns
// how many were added.
func (s *Store) AddBookmarks(ctx context.Context, entries []domain.BookmarkEntry) (int, error) {
	list := s.ListBookmarks(ctx)
	seen := make(map[string]bool, len(list))
	for _, b := range list {
		seen[b.ID] = true
	}
	var fresh []domain.BookmarkEntry
	for _, e := range entries {
		if strings.TrimSpace(e.ID) == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	return len(fresh), s.saveBookmarks(ctx, append(fresh, list...))
}

func (s *Store) saveBookmarks(ctx context.Context, list []domain.BookmarkEntry) error {
	if len(list) > s.opts.BookmarkCap {
		list = list[:s.opts.BookmarkCap]
	}
	if err := s.writeJSON(ctx, KeyBookmarks, list, 0); err != nil {
		return err
	}
	s.notify(KeyBookmarks)
	return nil
}

// ClearBookmarks erases the bookmark list.
func (s *Store) ClearBookmarks(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.ns, KeyBookmarks); err != nil {
		return err
	}
	s.notify(KeyBookmarks)
	return nil
}

// BookmarksText renders one "{n}. {label} — {href}" line per bookmark.
func BookmarksText(list []domain.BookmarkEntry) string {
	lines := make([]string, len(list))
	for i, b := range list {
		lines[i] = fmt.Sprintf("%d. %s — %s", i+1, b.Label, b.Href)
	}
	return strings.Join(lines, "\n")
}

// ExportBookmarks writes the bookmark list as text. An empty list writes
// nothing and returns ErrNothingToExport.
func (s *Store) ExportBookmarks(ctx context.Context, w io.Writer) error {
	list := s.ListBookmarks(ctx)
	if len(list) == 0 {
		return ErrNothingToExport
	}
	if _, err := io.WriteString(w, BookmarksText(list)+"\n"); err != nil {
		return fmt.Errorf("failed to write bookmarks: %w", err)
	}
	return nil
}
