package store

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"nextstep/internal/domain"
)

// rawRecent tolerates hand-edited or foreign data in the recents key.
type rawRecent struct {
	Label any `json:"label"`
	Href  any `json:"href"`
	TS    any `json:"ts"`
}

// ListRecent returns the recent entries, newest first. Every read drops
// entries without a label, removes duplicate (label, href) pairs, applies the
// cap and writes the cleaned list back.
func (s *Store) ListRecent(ctx context.Context) []domain.RecentEntry {
	var raw []json.RawMessage
	healthy := s.readJSON(ctx, KeyRecent, &raw)

	clean := s.sanitize(raw)
	if !healthy || len(raw) > 0 {
		_ = s.writeJSON(ctx, KeyRecent, clean, 0)
	}
	return clean
}

func (s *Store) sanitize(raw []json.RawMessage) []domain.RecentEntry {
	out := make([]domain.RecentEntry, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	nowMS := s.now().UnixMilli()
	for _, msg := range raw {
		var r rawRecent
		if err := json.Unmarshal(msg, &r); err != nil {
			continue
		}
		label, _ := r.Label.(string)
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		href := "#"
		if h, ok := r.Href.(string); ok {
			href = strings.TrimSpace(h)
		}
		e := domain.RecentEntry{Label: label, Href: href, TS: timestamp(r.TS, nowMS)}
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	if len(out) > s.opts.RecentCap {
		out = out[:s.opts.RecentCap]
	}
	return out
}

func timestamp(v any, fallback int64) int64 {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int64(t)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// PushRecent moves (label, href) to the front with a fresh timestamp. A blank
// label is ignored; a blank href becomes "#".
func (s *Store) PushRecent(ctx context.Context, label, href string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	href = strings.TrimSpace(href)
	if href == "" {
		href = "#"
	}
	e := domain.RecentEntry{Label: label, Href: href, TS: s.now().UnixMilli()}

	list := slices.DeleteFunc(s.ListRecent(ctx), func(r domain.RecentEntry) bool { return r.Key() == e.Key() })
	list = slices.Insert(list, 0, e)
	if len(list) > s.opts.RecentCap {
		list = list[:s.opts.RecentCap]
	}
	if err := s.writeJSON(ctx, KeyRecent, list, 0); err != nil {
		return err
	}
	s.notify(KeyRecent)
	return nil
}

// ClearRecent erases the recents list.
func (s *Store) ClearRecent(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.ns, KeyRecent); err != nil {
		return err
	}
	s.notify(KeyRecent)
	return nil
}
