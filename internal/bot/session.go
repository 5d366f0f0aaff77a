package bot

import (
	"context"
	"fmt"
	"sync"

	"nextstep/internal/domain"
	"nextstep/internal/page"
	"nextstep/internal/query"
	"nextstep/internal/quiz"
	"nextstep/internal/store"
)

// session is one chat's state. Telegram updates may arrive concurrently,
// so every command holds mu for its whole run.
type session struct {
	mu sync.Mutex

	store     *store.Store
	quizStore *store.Store
	careers   *page.Controller[domain.Career]
	quiz      *quiz.Session

	// listing is the latest page pushed by the careers controller.
	listing *query.Result[domain.Career]
}

func namespace(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}

// session returns the chat's session, creating it on first use.
func (h *Handler) session(ctx context.Context, chatID int64) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[chatID]; ok {
		return s
	}

	st := store.New(h.deps.Repo, namespace(chatID), h.deps.StoreOptions, h.log)
	s := &session{
		store:     st,
		quizStore: st.WithRecentCap(h.deps.QuizRecentCap),
		quiz:      quiz.NewSession(h.deps.Bank),
	}
	s.careers = page.New(query.Careers(), h.deps.Catalog.Careers, page.Options{
		Page:     "careers",
		UserType: st.Profile(ctx).UserType,
		Recents:  st,
	})
	if h.deps.PageSize > 0 {
		s.careers.SetPageSize(h.deps.PageSize)
	}
	s.careers.Subscribe(func(r query.Result[domain.Career]) { s.listing = &r })

	h.sessions[chatID] = s
	h.log.WithField("chat_id", chatID).Debug("Session created")
	return s
}

// takeListing returns and clears the pending listing.
func (s *session) takeListing() (query.Result[domain.Career], bool) {
	if s.listing == nil {
		return query.Result[domain.Career]{}, false
	}
	r := *s.listing
	s.listing = nil
	return r, true
}
