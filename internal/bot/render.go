package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"nextstep/internal/domain"
	"nextstep/internal/query"
	"nextstep/internal/quiz"
	"nextstep/internal/store"
)

const helpText = `Commands:
/careers [text] - search the career bank
/more, /back - next or previous page
/industry <name> - toggle an industry filter
/sort <az|za|salaryasc|salarydesc> - change the order
/clear - reset filters
/open <id> - career details
/bookmark <id> - save or remove a career
/bookmarks, /export - your saved careers
/recent - recently viewed
/quiz <interest> - take the interest quiz
/profile <name> <student|graduate|professional>`

func renderWelcome(p domain.Profile, visits int) string {
	var b strings.Builder
	if g := p.Greeting(); g != "" {
		b.WriteString(g)
		b.WriteString("\n")
	} else {
		b.WriteString("Welcome to NextStep Navigator!\n")
	}
	if visits > 0 {
		fmt.Fprintf(&b, "Visit #%d\n", visits)
	}
	b.WriteString("\n")
	b.WriteString(helpText)
	return b.String()
}

func formatSalary(c domain.Career) string {
	if c.SalaryMax <= 0 {
		return ""
	}
	return fmt.Sprintf("$%s–$%s", compact(c.SalaryMin), compact(c.SalaryMax))
}

// compact prints 90000 as 90k.
func compact(v float64) string {
	if v >= 1000 {
		return strconv.FormatFloat(v/1000, 'f', -1, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderCareers(res query.Result[domain.Career], spec query.Spec, bookmarked func(id string) bool) string {
	if res.Total == 0 {
		return "No careers match your filters. Try /clear."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Careers: page %d/%d, %d results\n", res.Page, res.TotalPages, res.Total)
	for i, c := range res.Items {
		mark := ""
		if bookmarked(c.ID) {
			mark = "★ "
		}
		n := (res.Page-1)*res.PageSize + i + 1
		fmt.Fprintf(&b, "%d. %s%s · %s", n, mark, c.Title, c.Industry)
		if s := formatSalary(c); s != "" {
			b.WriteString(" · " + s)
		}
		fmt.Fprintf(&b, " [%s]\n", c.ID)
	}
	if len(res.Items) == 0 {
		b.WriteString("This page is empty.\n")
	}
	if sel := spec.Selected(query.FilterIndustry); len(sel) > 0 {
		fmt.Fprintf(&b, "Industries: %s\n", strings.Join(sel, ", "))
	}
	if res.Page < res.TotalPages {
		b.WriteString("/more for the next page")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCareer(c domain.Career) string {
	lines := []string{c.Title, "Industry: " + c.Industry, "Education: " + c.Education}
	if s := formatSalary(c); s != "" {
		lines = append(lines, "Salary: "+s)
	}
	if len(c.Skills) > 0 {
		lines = append(lines, "Skills: "+strings.Join(c.Skills, ", "))
	}
	lines = append(lines, "/bookmark "+c.ID)
	return strings.Join(lines, "\n")
}

func renderBookmarks(list []domain.BookmarkEntry) string {
	if len(list) == 0 {
		return "No bookmarks yet."
	}
	return store.BookmarksText(list)
}

func renderRecent(list []domain.RecentEntry) string {
	if len(list) == 0 {
		return "Nothing viewed yet."
	}
	lines := make([]string, len(list))
	for i, r := range list {
		lines[i] = fmt.Sprintf("• %s (%s)", r.Label, r.Href)
	}
	return strings.Join(lines, "\n")
}

// Callback data prefixes for the quiz keyboard.
const (
	cbPrefix  = "q:"
	cbAnswer  = "q:a:"
	cbJump    = "q:j:"
	cbNext    = "q:n"
	cbPrev    = "q:p"
	cbReview  = "q:r"
	cbSave    = "q:s"
	cbExport  = "q:x"
	cbRetake  = "q:t"
	noAnswer  = "(no answer)"
	checkMark = "✓ "
)

func button(text, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

func renderQuestion(s *quiz.Session) (string, *models.InlineKeyboardMarkup) {
	q, selected, err := s.Current()
	if err != nil {
		return "No quiz in progress. Start one with /quiz <interest>.", nil
	}
	total := s.Track().Total()
	text := fmt.Sprintf("Question %d of %d\n%s", s.Index()+1, total, q.Prompt)

	rows := make([][]models.InlineKeyboardButton, 0, len(q.Choices)+1)
	for i, ch := range q.Choices {
		label := ch.Text
		if i == selected {
			label = checkMark + label
		}
		rows = append(rows, []models.InlineKeyboardButton{button(label, cbAnswer+strconv.Itoa(i))})
	}
	nextLabel := "Next"
	if s.Index() == total-1 {
		nextLabel = "See results"
	}
	rows = append(rows, []models.InlineKeyboardButton{
		button("Back", cbPrev),
		button("Review", cbReview),
		button(nextLabel, cbNext),
	})
	return text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func renderReview(s *quiz.Session) (string, *models.InlineKeyboardMarkup) {
	lines := s.Review()
	var b strings.Builder
	b.WriteString("Your answers:")
	var row []models.InlineKeyboardButton
	for _, l := range lines {
		ans := noAnswer
		if l.Answered {
			ans = l.Answer
		}
		fmt.Fprintf(&b, "\nQ%d: %s", l.Index+1, ans)
		row = append(row, button("Q"+strconv.Itoa(l.Index+1), cbJump+strconv.Itoa(l.Index)))
	}
	return b.String(), &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}

func renderResults(ranked []quiz.Ranked, recs []domain.Career) (string, *models.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString("Your results\n")
	signals := quiz.Signals(ranked)
	if len(signals) == 0 {
		b.WriteString("No signals yet. Try retaking.\n")
	}
	for i, r := range signals {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "%s • %s\n", domain.Capitalize(r.Category), quiz.FormatScore(r.Score))
	}
	b.WriteString("\nSuggested careers:\n")
	if len(recs) == 0 {
		b.WriteString("No career suggestions found. Try another interest.")
	}
	for _, c := range recs {
		fmt.Fprintf(&b, "• %s [%s]\n", c.Title, c.ID)
	}

	row := []models.InlineKeyboardButton{button("Export", cbExport), button("Retake", cbRetake)}
	if len(recs) > 0 {
		row = append([]models.InlineKeyboardButton{button("Save all", cbSave)}, row...)
	}
	return strings.TrimRight(b.String(), "\n"), &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}
