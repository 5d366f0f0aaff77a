package quiz

import (
	"cmp"
	"errors"
	"maps"
	"slices"
)

// State is the lifecycle of a Session.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "not_started"
	}
}

var (
	ErrUnknownTrack       = errors.New("quiz content unavailable for this interest")
	ErrNotAnswered        = errors.New("please select an answer to continue")
	ErrNotInProgress      = errors.New("quiz is not in progress")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrChoiceOutOfRange   = errors.New("choice index out of range")
)

const unanswered = -1

// Ranked is one category with its score.
type Ranked struct {
	Category string
	Score    float64
}

// ReviewLine summarizes one question for the review list.
type ReviewLine struct {
	Index    int
	Prompt   string
	Answer   string
	Answered bool
	Current  bool
}

// Session drives one pass through a track. It is not safe for concurrent
// use; callers serialize access per user.
type Session struct {
	bank    *Bank
	track   *Track
	state   State
	index   int
	answers []int
	scores  map[string]float64
}

// NewSession returns an idle session over bank.
func NewSession(bank *Bank) *Session {
	return &Session{bank: bank, state: NotStarted}
}

// Start begins the named track, discarding any previous progress. A track
// that is missing or has no questions leaves the session untouched.
func (s *Session) Start(track string) error {
	t, ok := s.bank.Track(track)
	if !ok || t.Total() == 0 {
		return ErrUnknownTrack
	}
	s.track = t
	s.index = 0
	s.answers = slices.Repeat([]int{unanswered}, t.Total())
	s.scores = nil
	s.state = InProgress
	return nil
}

// State reports the lifecycle state.
func (s *Session) State() State { return s.state }

// Track returns the active track, or nil before Start.
func (s *Session) Track() *Track { return s.track }

// Index is the current question position.
func (s *Session) Index() int { return s.index }

// Current returns the question at the cursor and its selected choice, or
// -1 when unanswered.
func (s *Session) Current() (Question, int, error) {
	if s.state != InProgress {
		return Question{}, unanswered, ErrNotInProgress
	}
	return s.track.Questions[s.index], s.answers[s.index], nil
}

// Answers returns a copy of the per-question selections (-1 = unanswered).
func (s *Session) Answers() []int { return slices.Clone(s.answers) }

// Answer records choice for the current question, overwriting any previous
// selection.
func (s *Session) Answer(choice int) error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	q := s.track.Questions[s.index]
	if choice < 0 || choice >= len(q.Choices) {
		return ErrChoiceOutOfRange
	}
	s.answers[s.index] = choice
	return nil
}

// Next advances the cursor. On the last question it completes the quiz and
// computes scores. The current question must be answered.
func (s *Session) Next() (completed bool, err error) {
	if s.state != InProgress {
		return false, ErrNotInProgress
	}
	if s.answers[s.index] == unanswered {
		return false, ErrNotAnswered
	}
	if s.index < s.track.Total()-1 {
		s.index++
		return false, nil
	}
	s.scores = s.compute()
	s.state = Completed
	return true, nil
}

// Previous steps back one question; it is a no-op on the first.
func (s *Session) Previous() error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Jump moves the cursor to question i. Only questions reachable by Next are
// allowed: every question before i must be answered.
func (s *Session) Jump(i int) error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	if i < 0 || i >= s.track.Total() {
		return ErrQuestionOutOfRange
	}
	if slices.Contains(s.answers[:i], unanswered) {
		return ErrQuestionOutOfRange
	}
	s.index = i
	return nil
}

// Review lists every question with its selected answer.
func (s *Session) Review() []ReviewLine {
	if s.track == nil {
		return nil
	}
	out := make([]ReviewLine, len(s.track.Questions))
	for i, q := range s.track.Questions {
		line := ReviewLine{Index: i, Prompt: q.Prompt, Current: s.state == InProgress && i == s.index}
		if a := s.answers[i]; a != unanswered {
			line.Answered = true
			line.Answer = q.Choices[a].Text
		}
		out[i] = line
	}
	return out
}

// Retake discards the session and returns to NotStarted so a track can be
// chosen again.
func (s *Session) Retake() {
	s.track = nil
	s.index = 0
	s.answers = nil
	s.scores = nil
	s.state = NotStarted
}

// Scores returns the total of every bank category, zero for categories no
// answer has weighted yet. Scores are recomputed from the full answer list,
// so edits to earlier answers are always reflected.
func (s *Session) Scores() map[string]float64 {
	if s.state == Completed && s.scores != nil {
		return maps.Clone(s.scores)
	}
	return s.compute()
}

func (s *Session) compute() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range s.bank.Categories() {
		out[c] = 0
	}
	if s.track == nil {
		return out
	}
	for i, a := range s.answers {
		if a == unanswered {
			continue
		}
		for cat, w := range s.track.Questions[i].Choices[a].Weights {
			out[cat] += w
		}
	}
	return out
}

// Rank orders every bank category by score, highest first. Ties keep the
// category declaration order.
func (s *Session) Rank() []Ranked {
	scores := s.Scores()
	cats := s.bank.Categories()
	out := make([]Ranked, len(cats))
	for i, c := range cats {
		out[i] = Ranked{Category: c, Score: scores[c]}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int { return cmp.Compare(b.Score, a.Score) })
	return out
}
