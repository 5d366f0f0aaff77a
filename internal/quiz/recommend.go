package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"nextstep/internal/domain"
)

const (
	recommendTop   = 3
	recommendLimit = 6
)

// Signals returns the ranked categories that scored above zero.
func Signals(ranked []Ranked) []Ranked {
	out := make([]Ranked, 0, len(ranked))
	for _, r := range ranked {
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Recommend picks careers whose industry matches one of the top three
// positive categories. Careers keep their collection order, are unique by
// id and are capped at six.
func Recommend(ranked []Ranked, careers []domain.Career) []domain.Career {
	signals := Signals(ranked)
	if len(signals) > recommendTop {
		signals = signals[:recommendTop]
	}
	industries := make(map[string]bool, len(signals))
	for _, r := range signals {
		if ind, ok := StreamToIndustry[r.Category]; ok {
			industries[ind] = true
		}
	}

	seen := make(map[string]bool)
	out := []domain.Career{}
	for _, c := range careers {
		if !industries[strings.ToLower(strings.TrimSpace(c.Industry))] || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
		if len(out) >= recommendLimit {
			break
		}
	}
	return out
}

// ExportFilename is the suggested name for ResultsText output.
const ExportFilename = "Interest_Quiz_Results.txt"

// ResultsText renders the plain-text results export.
func ResultsText(s *Session) string {
	var b strings.Builder
	b.WriteString("NextStep Navigator — Interest Quiz Results\n")
	name := ""
	if t := s.Track(); t != nil {
		name = t.Name
	}
	fmt.Fprintf(&b, "Focus: %s\n\n", name)

	b.WriteString("Streams:\n")
	for i, r := range s.Rank() {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, r.Category, FormatScore(r.Score))
	}
	b.WriteString("\nAnswers:")
	for _, line := range s.Review() {
		txt := "(no answer)"
		if line.Answered {
			txt = line.Answer
		}
		fmt.Fprintf(&b, "\nQ%d. %s\n   → %s", line.Index+1, line.Prompt, txt)
	}
	return b.String()
}

// FormatScore prints whole scores without a decimal point.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
