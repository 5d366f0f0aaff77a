package domain

import "strings"

// Profile is the per-visit personalization: a display name and a user type
// such as "student", "graduate" or "professional". Both may be empty.
type Profile struct {
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// IsZero reports whether neither field is set.
func (p Profile) IsZero() bool {
	return p.Name == "" && p.UserType == ""
}

// Greeting renders the header text, e.g. "Hi Asha • Student".
func (p Profile) Greeting() string {
	if p.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString("Hi ")
	b.WriteString(p.Name)
	if p.Name != "" && p.UserType != "" {
		b.WriteString(" • ")
	}
	b.WriteString(Capitalize(p.UserType))
	return b.String()
}

// Tailored renders the "Tailored for" label, empty without a user type.
func (p Profile) Tailored() string {
	if p.UserType == "" {
		return ""
	}
	return "Tailored for: " + p.UserType
}

// Title is the friendly title used on the home page greeting.
func (p Profile) Title() string {
	switch p.UserType {
	case "student":
		return "Future Scholar"
	case "graduate":
		return "Rising Graduate"
	case "professional":
		return "Career Trailblazer"
	}
	return ""
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
