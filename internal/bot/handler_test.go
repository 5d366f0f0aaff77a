package bot

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextstep/internal/content"
	"nextstep/internal/quiz"
	"nextstep/internal/storage"
	"nextstep/internal/store"
)

func setupHandler(t *testing.T) *Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo, err := storage.NewInMemoryRepository(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return newHandler(Deps{
		Catalog:       &content.Catalog{Careers: content.NormalizeCareers(content.FallbackCareers())},
		Bank:          quiz.FallbackBank(),
		Repo:          repo,
		StoreOptions:  store.Options{},
		QuizRecentCap: store.DefaultQuizRecentCap,
		PageSize:      3,
	}, log)
}

func only(t *testing.T, replies []reply) reply {
	t.Helper()
	require.Len(t, replies, 1)
	return replies[0]
}

func TestParseCommand(t *testing.T) {
	cmd, arg := parseCommand("/Careers@nextstep_bot  data science ")
	assert.Equal(t, "/careers", cmd)
	assert.Equal(t, "data science", arg)
}

func TestDispatch_CareersPaging(t *testing.T) {
	h := setupHandler(t)
	ctx := context.Background()

	r := only(t, h.dispatch(ctx, 1, "/careers"))
	assert.Contains(t, r.Text, "page 1/3, 8 results")
	assert.Contains(t, r.Text, "/more")

	r = only(t, h.dispatch(ctx, 1, "/more"))
	assert.Contains(t, r.Text, "page 2/3")
	_ = h.dispatch(ctx, 1, "/more")
	assert.Equal(t, "You are on the last page.", only(t, h.dispatch(ctx, 1, "/more")).Text)

	r = only(t, h.dispatch(ctx, 1, "/industry Design"))
	assert.Contains(t, r.Text, "2 results")
	assert.Contains(t, r.Text, "Industries: design")

	r = only(t, h.dispatch(ctx, 1, "/clear"))
	assert.Contains(t, r.Text, "8 results")

	r = only(t, h.dispatch(ctx, 1, "/industry"))
	assert.Equal(t, "Industries: business, design, engineering, healthcare, technology", r.Text)
}

func TestDispatch_BookmarksAndRecents(t *testing.T) {
	h := setupHandler(t)
	ctx := context.Background()

	assert.Equal(t, "Nothing to export yet.", only(t, h.dispatch(ctx, 2, "/export")).Text)
	assert.Equal(t, "Bookmarked UX Designer.", only(t, h.dispatch(ctx, 2, "/bookmark ux")).Text)
	assert.Equal(t, `No career with id "zz".`, only(t, h.dispatch(ctx, 2, "/bookmark zz")).Text)

	r := only(t, h.dispatch(ctx, 2, "/export"))
	assert.Equal(t, "Bookmarks.txt", r.Filename)
	assert.Equal(t, "1. UX Designer — careers.html?c=ux\n", string(r.Document))

	r = only(t, h.dispatch(ctx, 2, "/careers designer"))
	assert.Contains(t, r.Text, "★ UX Designer")

	assert.Equal(t, "Nothing viewed yet.", only(t, h.dispatch(ctx, 2, "/recent")).Text)
	r = only(t, h.dispatch(ctx, 2, "/open se"))
	assert.True(t, strings.HasPrefix(r.Text, "Software Engineer"))
	assert.Equal(t, "• Software Engineer (careers.html?c=se)", only(t, h.dispatch(ctx, 2, "/recent")).Text)

	// Another chat sees nothing.
	assert.Equal(t, "No bookmarks yet.", only(t, h.dispatch(ctx, 3, "/bookmarks")).Text)
}

func TestDispatch_Profile(t *testing.T) {
	h := setupHandler(t)
	ctx := context.Background()

	r := only(t, h.dispatch(ctx, 4, "/profile Asha student"))
	assert.Equal(t, "Hi Asha • Student\nWelcome, Future Scholar!", r.Text)

	r = only(t, h.dispatch(ctx, 4, "/start"))
	assert.True(t, strings.HasPrefix(r.Text, "Hi Asha • Student\nVisit #1"))
	r = only(t, h.dispatch(ctx, 4, "/start"))
	assert.Contains(t, r.Text, "Visit #2")
}

func TestQuizFlow(t *testing.T) {
	h := setupHandler(t)
	ctx := context.Background()

	assert.Equal(t, "Quiz content unavailable for this interest.", only(t, h.dispatch(ctx, 5, "/quiz astronomy")).Text)

	r := only(t, h.dispatch(ctx, 5, "/quiz ugpg"))
	assert.True(t, strings.HasPrefix(r.Text, "Question 1 of 4\nWhich activity sounds most fun?"))
	require.NotNil(t, r.Markup)
	assert.Len(t, r.Markup.InlineKeyboard, 4)

	assert.Equal(t, "Please select an answer to continue.", only(t, h.callback(ctx, 5, cbNext)).Text)

	r = only(t, h.callback(ctx, 5, cbAnswer+"0"))
	assert.True(t, r.Edit)
	assert.Equal(t, checkMark+"Coding an app prototype", r.Markup.InlineKeyboard[0][0].Text)

	for range 3 {
		_ = h.callback(ctx, 5, cbNext)
		_ = h.callback(ctx, 5, cbAnswer+"0")
	}
	r = only(t, h.callback(ctx, 5, cbReview))
	assert.Contains(t, r.Text, "Q4: Build features hands-on")

	r = only(t, h.callback(ctx, 5, cbNext))
	assert.True(t, strings.HasPrefix(r.Text, "Your results\nTechnology • 12\nEngineering • 2\nDesign • 1"))
	assert.Contains(t, r.Text, "Software Engineer [se]")
	assert.Equal(t, "Save all", r.Markup.InlineKeyboard[0][0].Text)

	r = only(t, h.callback(ctx, 5, cbSave))
	assert.Equal(t, "Saved 5 recommended careers to bookmarks.", r.Text)

	r = only(t, h.callback(ctx, 5, cbExport))
	assert.Equal(t, quiz.ExportFilename, r.Filename)
	assert.Contains(t, string(r.Document), "Focus: technology")

	recent := only(t, h.dispatch(ctx, 5, "/recent")).Text
	assert.True(t, strings.HasPrefix(recent, "• Viewed Quiz Results"))

	r = only(t, h.callback(ctx, 5, cbRetake))
	assert.Contains(t, r.Text, "Pick an interest")
}

func TestSessionsAreSerialized(t *testing.T) {
	h := setupHandler(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.dispatch(ctx, 9, "/start")
		}()
	}
	wg.Wait()

	r := only(t, h.dispatch(ctx, 9, "/start"))
	assert.Contains(t, r.Text, "Visit #21")
}
