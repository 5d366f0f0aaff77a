package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"nextstep/internal/content"
)

// Filter names shared by the per-domain configs.
const (
	FilterUserType = "userType"
	FilterIndustry = "industry"
	FilterCategory = "category"
	FilterType     = "type"
	FilterDomain   = "domain"
	FilterFormat   = "format"
)

// Sort modes.
const (
	SortAZ         = "az"
	SortZA         = "za"
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortSalaryAsc  = "salaryasc"
	SortSalaryDesc = "salarydesc"
	SortDefault    = "default"
)

// Collation is the language used for title comparisons.
var Collation = language.English

// Order describes one sort mode. Exactly one of Text, Date or Number is set.
type Order[T any] struct {
	Text   func(T) string
	Date   func(T) string
	Number func(T) float64
	Desc   bool
}

// Config adapts the pipeline to one content domain.
type Config[T any] struct {
	Name string

	// Text returns the searchable fields of an item.
	Text func(T) []string

	// Categories extracts the normalized value compared against each
	// categorical filter.
	Categories map[string]func(T) string

	// UserType returns the raw audience tag; the userType filter uses the
	// four-way matcher instead of exact equality.
	UserType func(T) string

	// Range returns the item's numeric range for the Min/Max filter.
	Range func(T) (lo, hi float64)

	Sorts       map[string]Order[T]
	DefaultSort string

	// PageSize is the default page size; zero means one page holding everything.
	PageSize int
}

// Result is one computed page.
type Result[T any] struct {
	Items      []T
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// DefaultSpec is the cleared state for this domain.
func (c Config[T]) DefaultSpec() Spec {
	return Spec{
		Filters:  map[string][]string{},
		Sort:     c.DefaultSort,
		Page:     1,
		PageSize: c.PageSize,
	}
}

// Run filters, sorts and paginates items. It is pure: items is not modified
// and the same input always yields the same output.
func (c Config[T]) Run(items []T, s Spec) Result[T] {
	rows := c.Filter(items, s)
	c.Sort(rows, s.Sort)
	page := s.Page
	if page == 0 {
		page = 1
	}
	return Paginate(rows, page, c.pageSize(s, len(rows)))
}

// Filter returns the matching items in their original order.
func (c Config[T]) Filter(items []T, s Spec) []T {
	q := strings.ToLower(strings.TrimSpace(s.Query))
	selected := make(map[string][]string, len(s.Filters))
	for name := range s.Filters {
		if vals := s.Selected(name); len(vals) > 0 {
			selected[name] = vals
		}
	}
	ut := selected[FilterUserType]

	out := make([]T, 0, len(items))
	for _, it := range items {
		if q != "" && !c.matchesText(it, q) {
			continue
		}
		if !c.matchesCategories(it, selected) {
			continue
		}
		if len(ut) > 0 && c.UserType != nil && !matchesAnyUserType(c.UserType(it), ut) {
			continue
		}
		if c.Range != nil {
			if lo, hi := c.Range(it); !inRange(lo, hi, s.Min, s.Max) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (c Config[T]) matchesText(it T, q string) bool {
	if c.Text == nil {
		return true
	}
	hay := strings.ToLower(strings.Join(c.Text(it), " "))
	return strings.Contains(hay, q)
}

func (c Config[T]) matchesCategories(it T, selected map[string][]string) bool {
	for name, get := range c.Categories {
		vals, ok := selected[name]
		if !ok {
			continue
		}
		if !slices.Contains(vals, strings.ToLower(strings.TrimSpace(get(it)))) {
			return false
		}
	}
	return true
}

func matchesAnyUserType(itemUT string, selected []string) bool {
	for _, sel := range selected {
		if content.MatchesUserType(itemUT, sel) {
			return true
		}
	}
	return false
}

// inRange reports whether [lo,hi] intersects the requested bounds.
func inRange(lo, hi float64, lower, upper *float64) bool {
	if lower != nil && hi < *lower {
		return false
	}
	if upper != nil && lo > *upper {
		return false
	}
	return true
}

// Sort orders rows in place by the named mode. Unknown modes keep the
// current order.
func (c Config[T]) Sort(rows []T, mode string) {
	o, ok := c.Sorts[mode]
	if !ok {
		return
	}
	var cmpFn func(a, b T) int
	switch {
	case o.Text != nil:
		col := collate.New(Collation)
		cmpFn = func(a, b T) int { return col.CompareString(o.Text(a), o.Text(b)) }
	case o.Date != nil:
		cmpFn = func(a, b T) int { return parseDate(o.Date(a)).Compare(parseDate(o.Date(b))) }
	case o.Number != nil:
		cmpFn = func(a, b T) int { return cmp.Compare(o.Number(a), o.Number(b)) }
	default:
		return
	}
	if o.Desc {
		asc := cmpFn
		cmpFn = func(a, b T) int { return asc(b, a) }
	}
	slices.SortStableFunc(rows, cmpFn)
}

func (c Config[T]) pageSize(s Spec, total int) int {
	size := s.PageSize
	if size <= 0 {
		size = c.PageSize
	}
	if size <= 0 {
		size = max(total, 1)
	}
	return size
}

// Paginate returns the 1-indexed page of rows. A page past the end (or
// before the first) is empty rather than an error.
func Paginate[T any](rows []T, page, size int) Result[T] {
	if size <= 0 {
		size = max(len(rows), 1)
	}
	total := len(rows)
	res := Result[T]{
		Items:      []T{},
		Total:      total,
		TotalPages: max(1, (total+size-1)/size),
		Page:       page,
		PageSize:   size,
	}
	if page < 1 {
		return res
	}
	start := (page - 1) * size
	if start >= total {
		return res
	}
	end := min(start+size, total)
	res.Items = rows[start:end:end]
	return res
}

// Facets returns the distinct values of get over items, sorted for display.
func Facets[T any](items []T, get func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		v := get(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	col := collate.New(Collation)
	col.SortStrings(out)
	return out
}

func parseDate(s string) time.Time {
	t, _ := content.ParseDate(s)
	return t
}
