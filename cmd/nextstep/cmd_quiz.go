package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nextstep/internal/domain"
	"nextstep/internal/page"
	"nextstep/internal/query"
	"nextstep/internal/quiz"
)

var (
	quizSave   bool
	quizExport string
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the interest quiz",
}

var quizRunCmd = &cobra.Command{
	Use:   "run <track|ugpg|pro>",
	Short: "Answer a quiz track interactively",
	Long: `Answer each question by number. At the prompt you can also type
p (previous), r (review answers), j N (jump to question N), or q (quit).
Pressing enter keeps the current answer and moves on.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuizRun,
}

var quizCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the question bank and report its tracks",
	Args:  cobra.NoArgs,
	RunE:  runQuizCheck,
}

func init() {
	quizRunCmd.Flags().BoolVar(&quizSave, "save", false, "bookmark the recommended careers")
	quizRunCmd.Flags().StringVar(&quizExport, "export", "", "write the results text to this file")
	quizCmd.AddCommand(quizRunCmd, quizCheckCmd)
	rootCmd.AddCommand(quizCmd)
}

func loadBank(cmd *cobra.Command) (*quiz.Bank, error) {
	bank, notice, err := quiz.LoadBank(cmd.Context(), current.loader())
	if notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	return bank, nil
}

func runQuizCheck(cmd *cobra.Command, args []string) error {
	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, name := range bank.Tracks() {
		t, _ := bank.Track(name)
		fmt.Fprintf(w, "%-14s %d questions\n", name, t.Total())
	}
	fmt.Fprintf(w, "categories: %s\n", strings.Join(bank.Categories(), ", "))
	return nil
}

func printQuestion(w io.Writer, s *quiz.Session) {
	q, sel, err := s.Current()
	if err != nil {
		return
	}
	fmt.Fprintf(w, "\nQ%d/%d. %s\n", s.Index()+1, s.Track().Total(), q.Prompt)
	for i, ch := range q.Choices {
		mark := " "
		if i == sel {
			mark = "*"
		}
		fmt.Fprintf(w, " %s %d) %s\n", mark, i+1, ch.Text)
	}
	fmt.Fprint(w, "> ")
}

func printReview(w io.Writer, s *quiz.Session) {
	for _, line := range s.Review() {
		answer := "(no answer)"
		if line.Answered {
			answer = line.Answer
		}
		cur := " "
		if line.Current {
			cur = ">"
		}
		fmt.Fprintf(w, "%s Q%d. %s\n     %s\n", cur, line.Index+1, line.Prompt, answer)
	}
}

// step applies one line of input. It returns false when the user quits.
func step(w io.Writer, s *quiz.Session, in string) bool {
	switch {
	case in == "q":
		return false
	case in == "p":
		_ = s.Previous()
	case in == "r":
		printReview(w, s)
	case strings.HasPrefix(in, "j"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(in, "j")))
		if err != nil {
			fmt.Fprintln(w, "Usage: j N")
			break
		}
		if err := s.Jump(n - 1); err != nil {
			fmt.Fprintln(w, "Answer the earlier questions first.")
		}
	case in == "":
		if _, err := s.Next(); errors.Is(err, quiz.ErrNotAnswered) {
			fmt.Fprintln(w, "Please select an answer to continue.")
		}
	default:
		n, err := strconv.Atoi(in)
		if err != nil {
			fmt.Fprintln(w, "Enter a choice number.")
			break
		}
		if err := s.Answer(n - 1); err != nil {
			fmt.Fprintln(w, "No such choice.")
			break
		}
		_, _ = s.Next()
	}
	return true
}

func runQuizRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}
	track := strings.ToLower(args[0])
	if t, ok := quiz.ModeTrack(track); ok {
		track = t
	}
	sess := quiz.NewSession(bank)
	if err := sess.Start(track); err != nil {
		return fmt.Errorf("%w (tracks: %s)", err, strings.Join(bank.Tracks(), ", "))
	}

	st := current.store()
	recents := st.WithRecentCap(current.cfg.QuizRecentCap)
	for _, label := range []string{"Opened Quiz", "Started Interest Quiz"} {
		if err := recents.PushRecent(ctx, label, "quiz.html"); err != nil {
			current.log.WithError(err).Warn("Failed to record recent entry")
		}
	}

	w := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	for sess.State() == quiz.InProgress {
		printQuestion(w, sess)
		if !in.Scan() {
			return errors.New("quiz abandoned: input closed")
		}
		if !step(w, sess, strings.TrimSpace(in.Text())) {
			fmt.Fprintln(w, "Quiz abandoned.")
			return nil
		}
	}

	if err := recents.PushRecent(ctx, "Viewed Quiz Results", "quiz.html#results"); err != nil {
		current.log.WithError(err).Warn("Failed to record recent entry")
	}

	ranked := sess.Rank()
	fmt.Fprintln(w, "\nYour interest profile:")
	signals := quiz.Signals(ranked)
	if len(signals) == 0 {
		fmt.Fprintln(w, "No strong signals yet. Try different answers.")
	}
	for _, r := range signals {
		fmt.Fprintf(w, "%s • %s\n", domain.Capitalize(r.Category), quiz.FormatScore(r.Score))
	}

	recs := quiz.Recommend(ranked, current.catalog(cmd).Careers)
	if len(recs) > 0 {
		fmt.Fprintln(w, "\nRecommended careers:")
		for _, c := range recs {
			fmt.Fprintf(w, "  %-10s %s\n", c.ID, careerLine(c))
		}
	}

	if quizSave && len(recs) > 0 {
		careers := page.New(query.Careers(), recs, page.Options{})
		entries := make([]domain.BookmarkEntry, len(recs))
		for i, c := range recs {
			entries[i] = careers.Entry(c)
		}
		n, err := st.AddBookmarks(ctx, entries)
		if err != nil {
			return fmt.Errorf("failed to save recommendations: %w", err)
		}
		fmt.Fprintf(w, "Saved %d recommended careers to bookmarks.\n", n)
	}
	if quizExport != "" {
		if err := os.WriteFile(quizExport, []byte(quiz.ResultsText(sess)+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		fmt.Fprintf(w, "Exported results to %s\n", quizExport)
	}
	return nil
}
