package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstep/internal/content"
	"nextstep/internal/domain"
	"nextstep/internal/query"
)

type recents struct {
	entries [][2]string
}

func (r *recents) PushRecent(_ context.Context, label, href string) error {
	r.entries = append(r.entries, [2]string{label, href})
	return nil
}

func careers() []domain.Career {
	return content.NormalizeCareers(content.FallbackCareers())
}

func titles(items []domain.Career) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Title
	}
	return out
}

func TestController_NotifiesOnEveryChange(t *testing.T) {
	c := New(query.Careers(), careers(), Options{})

	var got []query.Result[domain.Career]
	unsubscribe := c.Subscribe(func(r query.Result[domain.Career]) { got = append(got, r) })

	c.SetQuery("designer")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Graphic Designer", "UX Designer"}, titles(got[0].Items))

	c.ToggleFilter(query.FilterIndustry, "design")
	c.SetSort(query.SortZA)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"UX Designer", "Graphic Designer"}, titles(got[2].Items))

	unsubscribe()
	c.Clear()
	assert.Len(t, got, 3)
	assert.Equal(t, 8, c.Result().Total)
}

func TestController_Paging(t *testing.T) {
	c := New(query.Careers(), careers(), Options{})
	c.SetPageSize(3)

	assert.Equal(t, 3, c.Result().TotalPages)
	assert.False(t, c.PrevPage())
	assert.True(t, c.NextPage())
	assert.True(t, c.NextPage())
	assert.False(t, c.NextPage())
	assert.Len(t, c.Result().Items, 2)

	c.SetQuery("engineer")
	assert.Equal(t, 1, c.Spec().Page, "a new query returns to the first page")
}

func TestController_SpecIsACopy(t *testing.T) {
	c := New(query.Careers(), careers(), Options{})
	s := c.Spec()
	s.Query = "nurse"
	assert.Equal(t, 8, c.Result().Total)
}

func TestController_ProfilePreselectsUserType(t *testing.T) {
	items := content.NormalizeResources([]any{
		map[string]any{"id": "a", "title": "For students", "userType": "student"},
		map[string]any{"id": "b", "title": "For pros", "userType": "professional"},
		map[string]any{"id": "c", "title": "For all"},
	})
	c := New(query.Resources(), items, Options{UserType: "student"})
	assert.Equal(t, []string{"student"}, c.Spec().Filters[query.FilterUserType])
	assert.Equal(t, 2, c.Result().Total)

	c.Clear()
	assert.Equal(t, 3, c.Result().Total)

	// Careers have no audience tag, so nothing is preselected.
	cc := New(query.Careers(), careers(), Options{UserType: "student"})
	assert.Empty(t, cc.Spec().Filters)
}

func TestController_OpenPushesRecent(t *testing.T) {
	rec := &recents{}
	c := New(query.Careers(), careers(), Options{Recents: rec})

	it, ok, err := c.Open(context.Background(), "ux")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "UX Designer", it.Title)
	assert.Equal(t, [][2]string{{"UX Designer", "careers.html?c=ux"}}, rec.entries)

	_, ok, err = c.Open(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, rec.entries, 1)

	assert.Equal(t, domain.BookmarkEntry{ID: "ux", Label: "UX Designer", Href: "careers.html?c=ux"}, c.Entry(it))
}

func TestController_Facets(t *testing.T) {
	c := New(query.Careers(), careers(), Options{})
	got := c.Facets(func(c domain.Career) string { return c.Industry })
	assert.Equal(t, []string{"business", "design", "engineering", "healthcare", "technology"}, got)
}
