package query

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstep/internal/content"
	"nextstep/internal/domain"
)

func sampleCareers() []domain.Career {
	return content.NormalizeCareers([]any{
		map[string]any{"id": "se", "title": "Software Engineer", "industry": "Technology", "salaryMin": 90000, "salaryMax": 150000, "skills": "Go, SQL"},
		map[string]any{"id": "ds", "title": "Data Scientist", "industry": "Technology", "salaryMin": 100000, "salaryMax": 160000, "skills": []any{"Python", "Statistics"}},
		map[string]any{"id": "pm", "title": "Product Manager", "industry": "Business", "salaryMin": 80000, "salaryMax": 140000},
		map[string]any{"id": "ux", "title": "UX Designer", "industry": "Design", "salaryMin": 60000, "salaryMax": 110000},
		map[string]any{"id": "rn", "title": "Registered Nurse", "industry": "Healthcare", "salaryMin": 55000, "salaryMax": 90000},
		map[string]any{"id": "ae", "title": "Éclair Baker", "industry": "Hospitality", "salaryMin": 20000, "salaryMax": 30000},
	})
}

func ids[T domain.Item](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID()
	}
	return out
}

func TestCareers_TextFilter(t *testing.T) {
	cfg := Careers()
	s := cfg.DefaultSpec()
	s.Query = "  PYTHON "

	res := cfg.Run(sampleCareers(), s)
	assert.Equal(t, []string{"ds"}, ids(res.Items))
	assert.Equal(t, 1, res.Total)

	s.Query = ""
	assert.Equal(t, 6, cfg.Run(sampleCareers(), s).Total, "empty query matches everything")
}

func TestCareers_IndustryMultiSelect(t *testing.T) {
	cfg := Careers()
	s := cfg.DefaultSpec().With(FilterIndustry, "Technology", "design")

	res := cfg.Run(sampleCareers(), s)
	assert.Equal(t, []string{"ds", "se", "ux"}, ids(res.Items))

	s = s.Toggle(FilterIndustry, "design")
	assert.Equal(t, []string{"ds", "se"}, ids(cfg.Run(sampleCareers(), s).Items))
}

func TestCareers_SalaryRangeIntersects(t *testing.T) {
	cfg := Careers()
	tests := []struct {
		name     string
		min, max *float64
		want     []string
	}{
		{"no bounds", nil, nil, []string{"ds", "ae", "pm", "rn", "se", "ux"}},
		{"min only", Float(145000), nil, []string{"ds", "se"}},
		{"max only", nil, Float(58000), []string{"ae", "rn"}},
		{"overlap at edge", Float(90000), Float(90000), []string{"pm", "rn", "se", "ux"}},
		{"nothing", Float(500000), nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cfg.DefaultSpec()
			s.Min, s.Max = tt.min, tt.max
			res := cfg.Run(sampleCareers(), s)
			got := ids(res.Items)
			if diff := cmp.Diff(sortedCopy(tt.want), sortedCopy(got)); diff != "" {
				t.Errorf("range mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func sortedCopy(in []string) []string {
	out := append([]string{}, in...)
	slices.Sort(out)
	return out
}

func TestCareers_Sorts(t *testing.T) {
	cfg := Careers()
	items := sampleCareers()

	run := func(mode string) []string {
		s := cfg.DefaultSpec()
		s.Sort = mode
		return ids(cfg.Run(items, s).Items)
	}

	assert.Equal(t, []string{"ds", "ae", "pm", "rn", "se", "ux"}, run(SortAZ), "É collates next to E")
	assert.Equal(t, []string{"ux", "se", "rn", "pm", "ae", "ds"}, run(SortZA))
	assert.Equal(t, []string{"ds", "se", "pm", "ux", "rn", "ae"}, run(SortSalaryDesc))
	assert.Equal(t, []string{"ae", "rn", "ux", "pm", "se", "ds"}, run(SortSalaryAsc))
	assert.Equal(t, []string{"se", "ds", "pm", "ux", "rn", "ae"}, run("bogus"), "unknown sort keeps order")
}

func TestResources_DateSortAndFilters(t *testing.T) {
	cfg := Resources()
	items := content.NormalizeResources([]any{
		map[string]any{"id": "a", "title": "Old", "date": "2023-01-01", "type": "article", "userType": "student"},
		map[string]any{"id": "b", "title": "Undated", "type": "ebook"},
		map[string]any{"id": "c", "title": "New", "date": "2025-02-01", "type": "Article", "userType": "graduate,professional"},
		map[string]any{"id": "d", "title": "Everyone", "date": "2024-06-01", "type": "webinar", "userType": "all"},
		map[string]any{"id": "e", "title": "Generic", "date": "2024-01-01", "type": "webinar"},
	})

	s := cfg.DefaultSpec()
	assert.Equal(t, []string{"c", "d", "e", "a", "b"}, ids(cfg.Run(items, s).Items), "undated sorts earliest")

	s.Sort = SortOldest
	assert.Equal(t, []string{"b", "a", "e", "d", "c"}, ids(cfg.Run(items, s).Items))

	s = cfg.DefaultSpec().With(FilterUserType, "Professional")
	assert.Equal(t, []string{"c", "d", "e", "b"}, ids(cfg.Run(items, s).Items))

	s = s.With(FilterType, "article")
	assert.Equal(t, []string{"c"}, ids(cfg.Run(items, s).Items))
}

func TestRun_IsPureAndIdempotent(t *testing.T) {
	cfg := Careers()
	items := sampleCareers()
	before := append([]domain.Career{}, items...)

	s := cfg.DefaultSpec().With(FilterIndustry, "technology")
	s.Sort = SortSalaryDesc
	s.PageSize = 1

	first := cfg.Run(items, s)
	second := cfg.Run(items, s)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestPaginate_Invariants(t *testing.T) {
	for n := 0; n <= 25; n++ {
		for size := 1; size <= 7; size++ {
			rows := make([]int, n)
			for i := range rows {
				rows[i] = i
			}
			first := Paginate(rows, 1, size)
			wantPages := max(1, (n+size-1)/size)
			require.Equal(t, wantPages, first.TotalPages, fmt.Sprintf("n=%d size=%d", n, size))

			sum := 0
			var seen []int
			for p := 1; p <= first.TotalPages; p++ {
				page := Paginate(rows, p, size)
				sum += len(page.Items)
				seen = append(seen, page.Items...)
			}
			require.Equal(t, n, sum)
			require.Equal(t, rows, append([]int{}, seen...))
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	rows := []string{"a", "b", "c"}
	assert.Empty(t, Paginate(rows, 5, 2).Items)
	assert.Empty(t, Paginate(rows, -1, 2).Items)
	assert.Equal(t, 2, Paginate(rows, 5, 2).TotalPages)
	assert.Equal(t, []string{"c"}, Paginate(rows, 2, 2).Items)
}

func TestUnpaginatedConfig(t *testing.T) {
	cfg := Streams()
	items := content.NormalizeAdmissions(map[string]any{"streams": []any{
		map[string]any{"title": "Science", "userType": "student"},
		map[string]any{"title": "Arts", "userType": []any{"graduate"}},
		map[string]any{"title": "Commerce"},
	}}).Streams

	s := cfg.DefaultSpec()
	res := cfg.Run(items, s)
	assert.Equal(t, 3, len(res.Items))
	assert.Equal(t, 1, res.TotalPages)

	s = s.With(FilterUserType, "student")
	s.Sort = SortAZ
	res = cfg.Run(items, s)
	got := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		got = append(got, it.Title)
	}
	assert.Equal(t, []string{"Commerce", "Science"}, got)
}

func TestFacets(t *testing.T) {
	got := Facets(sampleCareers(), func(c domain.Career) string { return c.Industry })
	assert.Equal(t, []string{"business", "design", "healthcare", "hospitality", "technology"}, got)
}

func TestSpecCloneIsDeep(t *testing.T) {
	s := Spec{Filters: map[string][]string{FilterIndustry: {"technology"}}, Min: Float(1)}
	c := s.Clone()
	c.Filters[FilterIndustry][0] = "design"
	*c.Min = 2
	assert.Equal(t, "technology", s.Filters[FilterIndustry][0])
	assert.Equal(t, 1.0, *s.Min)
}
