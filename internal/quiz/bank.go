package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Categories is the declared category order. Ties in ranking keep this order.
var Categories = []string{"technology", "business", "design", "healthcare", "engineering"}

// Choice is one answer option with its per-category weights.
type Choice struct {
	Text    string             `json:"t"`
	Weights map[string]float64 `json:"s"`
}

// Question is one prompt of a track.
type Question struct {
	Prompt  string   `json:"q"`
	Choices []Choice `json:"choices"`
}

// Track is a resolved interest track.
type Track struct {
	Name      string
	Questions []Question
}

// Total is the number of questions in the track.
func (t *Track) Total() int { return len(t.Questions) }

// AliasError reports an alias that does not resolve to a track with
// questions. It is a content authoring bug and fails the whole load.
type AliasError struct {
	Track  string
	Target string
	Reason string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("quiz bank: track %q references %q: %s", e.Track, e.Target, e.Reason)
}

// ErrInvalidBank is returned when the document is not an object of tracks.
var ErrInvalidBank = errors.New("quiz bank: document must be an object of tracks")

// Bank is the immutable lookup table of resolved tracks.
type Bank struct {
	tracks     map[string]*Track
	categories []string
}

type rawTrack struct {
	Use       *string    `json:"use"`
	Total     int        `json:"total"`
	Questions []Question `json:"questions"`
}

// decodeTrack decodes one bank entry. An alias whose target is not a string
// is reported as an AliasError; any other malformed entry fails with the
// track name.
func decodeTrack(name string, msg json.RawMessage) (rawTrack, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil || fields == nil {
		return rawTrack{}, fmt.Errorf("quiz bank: track %q must be an object", name)
	}
	if use, ok := fields["use"]; ok {
		var target string
		if err := json.Unmarshal(use, &target); err != nil {
			return rawTrack{}, &AliasError{Track: name, Target: string(use), Reason: "target must be a track name"}
		}
	}
	var rt rawTrack
	if err := json.Unmarshal(msg, &rt); err != nil {
		return rawTrack{}, fmt.Errorf("quiz bank: track %q: %w", name, err)
	}
	return rt, nil
}

// ParseBank loads a question bank in two phases: decode every entry, then
// resolve aliases ({"use": "other"}) into concrete tracks, failing on the
// first alias whose chain does not end in a track with questions.
func ParseBank(doc any) (*Bank, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("quiz bank: %w", err)
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return nil, ErrInvalidBank
	}

	raw := make(map[string]rawTrack, len(entries))
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		name := strings.ToLower(strings.TrimSpace(key))
		rt, err := decodeTrack(name, entries[key])
		if err != nil {
			return nil, err
		}
		raw[name] = rt
	}

	b := &Bank{tracks: make(map[string]*Track, len(raw))}
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		rt := raw[name]
		if rt.Use == nil {
			b.tracks[name] = &Track{Name: name, Questions: rt.Questions}
			continue
		}
		target, err := resolve(raw, name)
		if err != nil {
			return nil, err
		}
		b.tracks[name] = &Track{Name: name, Questions: raw[target].Questions}
	}
	b.categories = collectCategories(b.tracks)
	return b, nil
}

func resolve(raw map[string]rawTrack, name string) (string, error) {
	seen := map[string]bool{name: true}
	cur := name
	for {
		rt := raw[cur]
		if rt.Use == nil {
			return cur, nil
		}
		next := strings.ToLower(strings.TrimSpace(*rt.Use))
		target, ok := raw[next]
		if !ok {
			return "", &AliasError{Track: name, Target: next, Reason: "missing track"}
		}
		if seen[next] {
			return "", &AliasError{Track: name, Target: next, Reason: "alias cycle"}
		}
		if target.Use == nil && len(target.Questions) == 0 {
			return "", &AliasError{Track: name, Target: next, Reason: "target has no questions"}
		}
		seen[next] = true
		cur = next
	}
}

// collectCategories returns the declared categories followed by any other
// weighted category in first-seen order.
func collectCategories(tracks map[string]*Track) []string {
	out := slices.Clone(Categories)
	known := make(map[string]bool, len(out))
	for _, c := range out {
		known[c] = true
	}
	for _, name := range slices.Sorted(maps.Keys(tracks)) {
		for _, q := range tracks[name].Questions {
			for _, ch := range q.Choices {
				for _, c := range slices.Sorted(maps.Keys(ch.Weights)) {
					if !known[c] {
						known[c] = true
						out = append(out, c)
					}
				}
			}
		}
	}
	return out
}

// Track looks up a resolved track by name, case-insensitively.
func (b *Bank) Track(name string) (*Track, bool) {
	t, ok := b.tracks[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Tracks lists the track names, sorted.
func (b *Bank) Tracks() []string {
	return slices.Sorted(maps.Keys(b.tracks))
}

// Categories is the scoring category order for this bank.
func (b *Bank) Categories() []string {
	return slices.Clone(b.categories)
}

// StreamToIndustry maps a scoring category onto the normalized career
// industry it recommends.
var StreamToIndustry = map[string]string{
	"technology":  "technology",
	"business":    "business",
	"design":      "design",
	"healthcare":  "healthcare",
	"engineering": "engineering",
}

// ModeTrack resolves a deep-link mode to the track it preselects.
func ModeTrack(mode string) (string, bool) {
	switch mode {
	case "ugpg":
		return "technology", true
	case "pro":
		return "business", true
	}
	return "", false
}
