package query

import (
	"maps"
	"slices"
	"strings"
)

// Spec is the transient query state of one listing: free text, categorical
// filters, an optional numeric range, a sort mode and a page cursor.
type Spec struct {
	Query string

	// Filters maps a filter name (see the Filter* constants) to the selected
	// values. An empty selection matches everything; several values are ORed.
	Filters map[string][]string

	// Min and Max bound the item range; nil means unbounded.
	Min *float64
	Max *float64

	Sort string

	// Page is 1-indexed.
	Page     int
	PageSize int
}

// Clone returns a deep copy so a caller can mutate it freely.
func (s Spec) Clone() Spec {
	out := s
	out.Filters = make(map[string][]string, len(s.Filters))
	for k, v := range s.Filters {
		out.Filters[k] = slices.Clone(v)
	}
	if s.Min != nil {
		v := *s.Min
		out.Min = &v
	}
	if s.Max != nil {
		v := *s.Max
		out.Max = &v
	}
	return out
}

// Selected returns the normalized values selected for a filter.
func (s Spec) Selected(name string) []string {
	var out []string
	for _, v := range s.Filters[name] {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// With returns a copy with the filter set to exactly values.
func (s Spec) With(name string, values ...string) Spec {
	out := s.Clone()
	if len(values) == 0 {
		delete(out.Filters, name)
		return out
	}
	out.Filters[name] = slices.Clone(values)
	return out
}

// Toggle adds value to a multi-select filter, or removes it when present.
func (s Spec) Toggle(name, value string) Spec {
	out := s.Clone()
	cur := out.Filters[name]
	if i := slices.Index(cur, value); i >= 0 {
		cur = slices.Delete(cur, i, i+1)
	} else {
		cur = append(cur, value)
	}
	if len(cur) == 0 {
		delete(out.Filters, name)
	} else {
		out.Filters[name] = cur
	}
	return out
}

// FilterNames lists the filters that currently have a selection, sorted.
func (s Spec) FilterNames() []string {
	names := slices.Collect(maps.Keys(s.Filters))
	slices.Sort(names)
	return names
}

// Float is a helper for building range bounds.
func Float(v float64) *float64 { return &v }
