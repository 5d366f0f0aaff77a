package content

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoader_FetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/careers.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": "se", "title": "Software Engineer"}]`))
		case "/data/slow.json":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		case "/data/broken.json":
			_, _ = w.Write([]byte(`[{"id": `))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/data/", 50*time.Millisecond, testLogger())
	ctx := context.Background()

	doc, err := l.Fetch(ctx, "careers.json")
	require.NoError(t, err)
	careers := NormalizeCareers(doc)
	require.Len(t, careers, 1)
	assert.Equal(t, "se", careers[0].ID)

	_, err = l.Fetch(ctx, "missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Fetch(ctx, "slow.json")
	require.Error(t, err, "timeout is an ordinary fetch failure")

	_, err = l.Fetch(ctx, "broken.json")
	require.Error(t, err)
}

func TestLoader_LoadFallsBack(t *testing.T) {
	l := NewLoader(t.TempDir(), time.Second, testLogger())

	doc, notice := l.Load(context.Background(), CareersDoc, FallbackCareers())
	assert.Contains(t, notice, "Could not load careers.json")
	assert.Len(t, NormalizeCareers(doc), 8)
}

func TestLoader_YAMLFromDirectory(t *testing.T) {
	dir := t.TempDir()
	yamlDoc := `
- id: ep1
  title: Breaking into UX
  format: Video
  userType: [student, graduate]
  date: 2024-06-01
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multimedia.yaml"), []byte(yamlDoc), 0o644))

	l := NewLoader(dir, time.Second, testLogger())
	doc, err := l.Fetch(context.Background(), "multimedia.yaml")
	require.NoError(t, err)

	media := NormalizeMedia(doc)
	require.Len(t, media, 1)
	assert.Equal(t, "video", media[0].Format)
	assert.Equal(t, "student,graduate", media[0].UserType)
	assert.Equal(t, "2024-06-01", media[0].Date)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AdmissionsDoc),
		[]byte(`{"streams": [{"title": "Commerce"}], "resume": [{"title": "Summary"}]}`), 0o644))

	c := LoadCatalog(context.Background(), NewLoader(dir, time.Second, testLogger()))

	assert.Len(t, c.Careers, 8, "careers fall back to the built-in set")
	assert.Len(t, c.Resources, 5)
	assert.Empty(t, c.Stories)
	assert.Len(t, c.Admissions.Streams, 1)
	assert.Len(t, c.Admissions.Resume, 1)
	assert.Contains(t, c.Notices, CareersDoc)
	assert.NotContains(t, c.Notices, AdmissionsDoc)
}

func TestLoadCatalog_YAMLVariants(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "careers.yaml"), []byte(`
- id: nurse
  title: Nurse
  industry: Healthcare
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stories.yml"), []byte(`
- id: s1
  name: Priya
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resources.yaml"), []byte("- id: [\n"), 0o644))

	c := LoadCatalog(context.Background(), NewLoader(dir, time.Second, testLogger()))

	require.Len(t, c.Careers, 1)
	assert.Equal(t, "nurse", c.Careers[0].ID)
	assert.Equal(t, "healthcare", c.Careers[0].Industry)
	assert.Len(t, c.Stories, 1)
	assert.NotContains(t, c.Notices, CareersDoc)
	assert.Len(t, c.Resources, 5, "a broken YAML variant still falls back")
	assert.Contains(t, c.Notices[ResourcesDoc], "resources.yaml")
}
