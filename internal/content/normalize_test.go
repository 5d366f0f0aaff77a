package content

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstep/internal/domain"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestNormalizeCareers(t *testing.T) {
	doc := decodeJSON(t, `[
		{"id": "se", "title": "Software Engineer", "industry": " Technology ", "salaryMin": "90000", "salaryMax": 150000, "skills": "Go, SQL ; Git|"},
		{"title": "Nurse", "salaryMin": "lots", "skills": ["Care", " ", "Triage"]},
		{},
		"not an object",
		{"id": "se", "title": "Duplicate"}
	]`)

	got := NormalizeCareers(doc)
	require.Len(t, got, 5)

	want := domain.Career{
		ID:        "se",
		Title:     "Software Engineer",
		Industry:  "technology",
		Icon:      "bi-briefcase",
		Education: "Varies",
		SalaryMin: 90000,
		SalaryMax: 150000,
		Skills:    []string{"Go", "SQL", "Git"},
		Href:      "careers.html?c=se",
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("first career mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "c-nurse-1", got[1].ID)
	assert.Equal(t, "general", got[1].Industry)
	assert.Zero(t, got[1].SalaryMin)
	assert.Equal(t, []string{"Care", "Triage"}, got[1].Skills)

	assert.Equal(t, "Untitled Role", got[2].Title)
	assert.Equal(t, "c-untitled-role-2", got[2].ID)
	assert.Equal(t, "Untitled Role", got[3].Title)
	assert.Equal(t, "se-1", got[4].ID, "duplicate ids are disambiguated")
}

func TestNormalizeAlwaysAssignsUniqueIDs(t *testing.T) {
	docs := []any{
		nil,
		"garbage",
		map[string]any{"careers": 1},
		decodeJSON(t, `[{}, {}, {"title": ""}, {"id": "  "}, {"id": "x"}, {"id": "x"}, {"id": "x-1"}]`),
		decodeJSON(t, `[{"title": "Same"}, {"title": "Same"}, {"title": 12}, {"salaryMin": "1e400"}]`),
	}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, c := range NormalizeCareers(doc) {
			require.NotEmpty(t, c.ID)
			require.False(t, seen[c.ID], "duplicate id %q", c.ID)
			seen[c.ID] = true
		}
		seen = map[string]bool{}
		for _, r := range NormalizeResources(doc) {
			require.NotEmpty(t, r.ID)
			require.False(t, seen[r.ID], "duplicate id %q", r.ID)
			seen[r.ID] = true
		}
	}
}

func TestNormalizeCoercesNonFiniteNumbers(t *testing.T) {
	doc := []any{map[string]any{"title": "X", "salaryMin": "NaN", "salaryMax": "Infinity"}}
	got := NormalizeCareers(doc)
	assert.Zero(t, got[0].SalaryMin)
	assert.Zero(t, got[0].SalaryMax)
}

func TestNormalizeResources(t *testing.T) {
	doc := decodeJSON(t, `[
		{"title": "Webinar", "type": "Webinar", "userType": ["Student", "Graduate"], "category": "Careers", "date": "2024-12-10", "minutes": "55"},
		{"title": "Guide", "date": "sometime", "tags": "resume, ats"}
	]`)
	got := NormalizeResources(doc)
	require.Len(t, got, 2)

	assert.Equal(t, "webinar", got[0].Type)
	assert.Equal(t, "student,graduate", got[0].UserType)
	assert.Equal(t, "careers", got[0].Category)
	assert.Equal(t, 55, got[0].Minutes)
	assert.Empty(t, got[0].Thumb, "webinars keep an empty thumbnail")

	assert.Equal(t, domain.DefaultDate, got[1].Date)
	assert.Equal(t, "general", got[1].Category)
	assert.Equal(t, placeholderThumb, got[1].Thumb)
	assert.Equal(t, []string{"resume", "ats"}, got[1].Tags)
}

func TestNormalizeStories(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	doc := decodeJSON(t, `[
		{"name": "Asha", "title": "From intern to lead", "domain": "Technology", "year": 2021},
		{"summary": "no name", "date": "2023-05-02"},
		{"year": "soon"}
	]`)
	got := NormalizeStories(doc)
	require.Len(t, got, 3)

	assert.Equal(t, "technology", got[0].Domain)
	assert.Equal(t, "2021-01-01", got[0].Date)
	assert.Equal(t, 2021, got[0].Year)

	assert.Equal(t, "Anonymous", got[1].Name)
	assert.Equal(t, "2023-05-02", got[1].Date)
	assert.Equal(t, 2026, got[1].Year)

	assert.Equal(t, domain.DefaultDate, got[2].Date)
}

func TestNormalizeMedia(t *testing.T) {
	got := NormalizeMedia(decodeJSON(t, `[{"title": "Ep 1", "format": " Podcast ", "userType": "*"}]`))
	require.Len(t, got, 1)
	assert.Equal(t, "podcast", got[0].Format)
	assert.Equal(t, "*", got[0].UserType)
	assert.Equal(t, "m-ep-1-0", got[0].ID)
}

func TestNormalizeAdmissions(t *testing.T) {
	doc := decodeJSON(t, `{
		"streams": [{"title": "Science (PCM)", "userType": "student|graduate", "subjects": "Physics, Chemistry"}],
		"timeline": [{}],
		"interviews": [{"title": "Behavioral", "qas": [{"q": "Tell me about yourself"}]}],
		"extra": true
	}`)
	got := NormalizeAdmissions(doc)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, "student|graduate", got.Streams[0].UserType)
	assert.True(t, MatchesUserType(got.Streams[0].UserType, "graduate"))
	assert.Equal(t, []string{"Physics", "Chemistry"}, got.Streams[0].Subjects)
	assert.True(t, strings.HasPrefix(got.Streams[0].ID, "stream-science-pcm"))

	require.Len(t, got.Timeline, 1)
	assert.Equal(t, "Step", got.Timeline[0].Title)

	require.Len(t, got.Interviews, 1)
	assert.Equal(t, "Think STAR", got.Interviews[0].QAs[0].Hint)

	assert.Empty(t, got.Resume)
	assert.NotNil(t, got.Resume)

	empty := NormalizeAdmissions([]any{1, 2})
	assert.Empty(t, empty.Streams)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "science-pcm", Slug("  Science (PCM) "))
	assert.Equal(t, "", Slug("---"))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-02", "2024-01-02T10:00:00Z", "2024-01", "2024"} {
		_, ok := ParseDate(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseDate("yesterday")
	assert.False(t, ok)
}
