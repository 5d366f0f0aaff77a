package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"nextstep/internal/content"
	"nextstep/internal/domain"
	"nextstep/internal/query"
	"nextstep/internal/quiz"
	"nextstep/internal/storage"
	"nextstep/internal/store"
)

// Deps are the shared, read-only inputs of every chat session.
type Deps struct {
	Catalog       *content.Catalog
	Bank          *quiz.Bank
	Repo          storage.Repository
	StoreOptions  store.Options
	QuizRecentCap int
	PageSize      int
}

// Handler renders the career bank, bookmarks and quiz over Telegram.
type Handler struct {
	bot  *tgbot.Bot
	deps Deps
	log  logrus.FieldLogger

	mu       sync.Mutex
	sessions map[int64]*session
}

// reply is one outgoing message. Edit replaces the message that carried
// the callback instead of sending a new one.
type reply struct {
	Text     string
	Markup   *models.InlineKeyboardMarkup
	Edit     bool
	Filename string
	Document []byte
}

func text(s string) []reply { return []reply{{Text: s}} }

func newHandler(deps Deps, logger logrus.FieldLogger) *Handler {
	return &Handler{
		deps:     deps,
		log:      logger.WithField("component", "bot_handler"),
		sessions: make(map[int64]*session),
	}
}

// NewHandler connects to Telegram and registers the command handlers.
func NewHandler(token string, deps Deps, logger logrus.FieldLogger) (*Handler, error) {
	h := newHandler(deps, logger)

	b, err := tgbot.New(token, tgbot.WithDefaultHandler(h.defaultHandler))
	if err != nil {
		h.log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b
	h.registerHandlers()

	h.log.Info("Telegram bot handler initialized")
	return h, nil
}

func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/", tgbot.MatchTypePrefix, h.commandHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, cbPrefix, tgbot.MatchTypePrefix, h.callbackHandler)
}

// Start polls Telegram until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped")
}

func (h *Handler) commandHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.log.WithFields(logrus.Fields{"chat_id": chatID, "text": update.Message.Text}).Debug("Received command")
	h.send(ctx, b, chatID, 0, h.dispatch(ctx, chatID, update.Message.Text))
}

func (h *Handler) callbackHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
		h.log.WithError(err).Debug("Failed to answer callback query")
	}
	msg := cq.Message.Message
	if msg == nil {
		return
	}
	h.send(ctx, b, msg.Chat.ID, msg.ID, h.callback(ctx, msg.Chat.ID, cq.Data))
}

func (h *Handler) defaultHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, 0, text(helpText))
}

func (h *Handler) send(ctx context.Context, b *tgbot.Bot, chatID int64, messageID int, replies []reply) {
	log := h.log.WithField("chat_id", chatID)
	for _, r := range replies {
		var err error
		switch {
		case r.Document != nil:
			_, err = b.SendDocument(ctx, &tgbot.SendDocumentParams{
				ChatID:   chatID,
				Document: &models.InputFileUpload{Filename: r.Filename, Data: bytes.NewReader(r.Document)},
				Caption:  r.Text,
			})
		case r.Edit && messageID != 0:
			params := &tgbot.EditMessageTextParams{ChatID: chatID, MessageID: messageID, Text: r.Text}
			if r.Markup != nil {
				params.ReplyMarkup = r.Markup
			}
			_, err = b.EditMessageText(ctx, params)
		default:
			params := &tgbot.SendMessageParams{ChatID: chatID, Text: r.Text}
			if r.Markup != nil {
				params.ReplyMarkup = r.Markup
			}
			_, err = b.SendMessage(ctx, params)
		}
		if err != nil {
			log.WithError(err).Error("Failed to send reply")
		}
	}
}

// parseCommand splits "/cmd@bot args" into "/cmd" and "args".
func parseCommand(s string) (cmd, arg string) {
	s = strings.TrimSpace(s)
	cmd, arg, _ = strings.Cut(s, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// dispatch runs one text command against the chat's session.
func (h *Handler) dispatch(ctx context.Context, chatID int64, msg string) []reply {
	cmd, arg := parseCommand(msg)
	s := h.session(ctx, chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case "/start":
		visits, err := s.store.BumpVisits(ctx)
		if err != nil {
			h.log.WithError(err).Warn("Failed to bump visit counter")
		}
		return text(renderWelcome(s.store.Profile(ctx), visits))
	case "/careers":
		s.careers.SetQuery(arg)
		return h.listing(ctx, s)
	case "/more":
		if !s.careers.NextPage() {
			return text("You are on the last page.")
		}
		return h.listing(ctx, s)
	case "/back":
		if !s.careers.PrevPage() {
			return text("You are on the first page.")
		}
		return h.listing(ctx, s)
	case "/industry":
		if arg == "" {
			facets := s.careers.Facets(func(c domain.Career) string { return c.Industry })
			return text("Industries: " + strings.Join(facets, ", "))
		}
		s.careers.ToggleFilter(query.FilterIndustry, strings.ToLower(arg))
		return h.listing(ctx, s)
	case "/sort":
		s.careers.SetSort(strings.ToLower(arg))
		return h.listing(ctx, s)
	case "/clear":
		s.careers.Clear()
		return h.listing(ctx, s)
	case "/open":
		c, ok, err := s.careers.Open(ctx, arg)
		if !ok {
			return text(fmt.Sprintf("No career with id %q.", arg))
		}
		if err != nil {
			h.log.WithError(err).Warn("Failed to record recent entry")
		}
		return text(renderCareer(c))
	case "/bookmark":
		return text(h.toggleBookmark(ctx, s, arg))
	case "/bookmarks":
		return text(renderBookmarks(s.store.ListBookmarks(ctx)))
	case "/export":
		var buf bytes.Buffer
		if err := s.store.ExportBookmarks(ctx, &buf); errors.Is(err, store.ErrNothingToExport) {
			return text("Nothing to export yet.")
		} else if err != nil {
			return text("Could not export bookmarks.")
		}
		return []reply{{Filename: "Bookmarks.txt", Document: buf.Bytes()}}
	case "/recent":
		return text(renderRecent(s.store.ListRecent(ctx)))
	case "/quiz":
		return h.startQuiz(ctx, s, arg)
	case "/profile":
		return text(h.saveProfile(ctx, s, arg))
	}
	return text(helpText)
}

func (h *Handler) listing(ctx context.Context, s *session) []reply {
	res, ok := s.takeListing()
	if !ok {
		res = s.careers.Result()
	}
	bookmarked := make(map[string]bool)
	for _, b := range s.store.ListBookmarks(ctx) {
		bookmarked[b.ID] = true
	}
	return text(renderCareers(res, s.careers.Spec(), func(id string) bool { return bookmarked[id] }))
}

func (h *Handler) toggleBookmark(ctx context.Context, s *session, id string) string {
	c, ok := s.careers.Find(id)
	if !ok {
		return fmt.Sprintf("No career with id %q.", id)
	}
	added, err := s.store.ToggleBookmark(ctx, s.careers.Entry(c))
	switch {
	case err != nil:
		h.log.WithError(err).Warn("Failed to toggle bookmark")
		return "Could not update bookmarks."
	case added:
		return "Bookmarked " + c.Title + "."
	default:
		return "Removed " + c.Title + " from bookmarks."
	}
}

func (h *Handler) saveProfile(ctx context.Context, s *session, arg string) string {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		if p := s.store.Profile(ctx); !p.IsZero() {
			return p.Greeting() + "\n" + p.Tailored()
		}
		return "Usage: /profile <name> <student|graduate|professional>"
	}
	p := domain.Profile{Name: fields[0]}
	if len(fields) > 1 {
		p.UserType = fields[1]
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		h.log.WithError(err).Warn("Failed to save profile")
		return "Could not save your profile."
	}
	p = s.store.Profile(ctx)
	if t := p.Title(); t != "" {
		return p.Greeting() + "\nWelcome, " + t + "!"
	}
	return p.Greeting()
}

func (h *Handler) startQuiz(ctx context.Context, s *session, arg string) []reply {
	track := strings.ToLower(arg)
	if t, ok := quiz.ModeTrack(track); ok {
		track = t
	}
	if track == "" {
		_ = s.quizStore.PushRecent(ctx, "Opened Quiz", "quiz.html")
		return text("Pick an interest: " + strings.Join(h.deps.Bank.Tracks(), ", "))
	}
	if err := s.quiz.Start(track); err != nil {
		return text("Quiz content unavailable for this interest.")
	}
	_ = s.quizStore.PushRecent(ctx, "Started Interest Quiz", "quiz.html")
	t, kb := renderQuestion(s.quiz)
	return []reply{{Text: t, Markup: kb}}
}

// callback handles a quiz keyboard press.
func (h *Handler) callback(ctx context.Context, chatID int64, data string) []reply {
	s := h.session(ctx, chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	question := func() []reply {
		t, kb := renderQuestion(s.quiz)
		return []reply{{Text: t, Markup: kb, Edit: true}}
	}

	switch {
	case strings.HasPrefix(data, cbAnswer):
		if i, err := strconv.Atoi(strings.TrimPrefix(data, cbAnswer)); err == nil {
			_ = s.quiz.Answer(i)
		}
		return question()
	case strings.HasPrefix(data, cbJump):
		i, err := strconv.Atoi(strings.TrimPrefix(data, cbJump))
		if err == nil {
			if err := s.quiz.Jump(i); errors.Is(err, quiz.ErrQuestionOutOfRange) {
				return text("Answer the earlier questions first.")
			}
		}
		return question()
	case data == cbPrev:
		_ = s.quiz.Previous()
		return question()
	case data == cbReview:
		if s.quiz.State() != quiz.InProgress {
			return question()
		}
		t, kb := renderReview(s.quiz)
		return []reply{{Text: t, Markup: kb, Edit: true}}
	case data == cbNext:
		done, err := s.quiz.Next()
		switch {
		case errors.Is(err, quiz.ErrNotAnswered):
			return text("Please select an answer to continue.")
		case err != nil:
			return question()
		case !done:
			return question()
		}
		_ = s.quizStore.PushRecent(ctx, "Viewed Quiz Results", "quiz.html#results")
		t, kb := renderResults(s.quiz.Rank(), quiz.Recommend(s.quiz.Rank(), h.deps.Catalog.Careers))
		return []reply{{Text: t, Markup: kb, Edit: true}}
	case data == cbSave:
		if s.quiz.State() != quiz.Completed {
			return text("Finish the quiz first.")
		}
		var entries []domain.BookmarkEntry
		for _, c := range quiz.Recommend(s.quiz.Rank(), h.deps.Catalog.Careers) {
			entries = append(entries, s.careers.Entry(c))
		}
		n, err := s.store.AddBookmarks(ctx, entries)
		if err != nil {
			return text("Could not save your recommended careers.")
		}
		return text(fmt.Sprintf("Saved %d recommended careers to bookmarks.", n))
	case data == cbExport:
		if s.quiz.State() != quiz.Completed {
			return text("Finish the quiz first.")
		}
		return []reply{{Filename: quiz.ExportFilename, Document: []byte(quiz.ResultsText(s.quiz))}}
	case data == cbRetake:
		s.quiz.Retake()
		return []reply{{Text: "Pick an interest: " + strings.Join(h.deps.Bank.Tracks(), ", "), Edit: true}}
	}
	return nil
}
