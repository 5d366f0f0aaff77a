package quiz

// FallbackDocument is the built-in bank used when quiz.json cannot be
// loaded. Every other interest aliases the technology track.
func FallbackDocument() map[string]any {
	w := func(kv ...any) map[string]any {
		m := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[kv[i].(string)] = kv[i+1]
		}
		return m
	}
	choice := func(t string, s map[string]any) map[string]any {
		return map[string]any{"t": t, "s": s}
	}
	question := func(q string, choices ...any) map[string]any {
		return map[string]any{"q": q, "choices": choices}
	}
	return map[string]any{
		"technology": map[string]any{
			"total": 4,
			"questions": []any{
				question("Which activity sounds most fun?",
					choice("Coding an app prototype", w("technology", 3, "design", 1)),
					choice("Sketching a brand concept", w("design", 3)),
					choice("Planning a product launch", w("business", 3)),
				),
				question("Pick a puzzle to solve:",
					choice("Automate a repetitive task", w("technology", 3, "engineering", 1)),
					choice("Improve a hospital workflow", w("healthcare", 3, "business", 1)),
					choice("Redesign a confusing form", w("design", 3)),
				),
				question("What do you want to learn next?",
					choice("Python / JS frameworks", w("technology", 3)),
					choice("Clinical decision-making", w("healthcare", 3)),
					choice("Market analysis & strategy", w("business", 3)),
				),
				question("Your ideal project role:",
					choice("Build features hands-on", w("technology", 3, "engineering", 1)),
					choice("Coordinate teams & roadmaps", w("business", 3)),
					choice("Shape interfaces & visuals", w("design", 3)),
				),
			},
		},
		"business":    map[string]any{"use": "technology"},
		"design":      map[string]any{"use": "technology"},
		"healthcare":  map[string]any{"use": "technology"},
		"engineering": map[string]any{"use": "technology"},
	}
}

// FallbackBank parses FallbackDocument. The document is static, so an
// error here is a programming mistake.
func FallbackBank() *Bank {
	b, err := ParseBank(FallbackDocument())
	if err != nil {
		panic(err)
	}
	return b
}
