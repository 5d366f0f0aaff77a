package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesUserType(t *testing.T) {
	tests := []struct {
		name     string
		itemUT   any
		selected string
		want     bool
	}{
		{"empty selection matches", "professional", "", true},
		{"blank selection matches", "professional", "   ", true},
		{"nil item matches", nil, "anything", true},
		{"empty item matches", "", "student", true},
		{"single token", "student", "student", true},
		{"single token mismatch", "professional", "student", false},
		{"delimited case-insensitive", "student,graduate", "Graduate", true},
		{"semicolon and pipe", "student; graduate | professional", "professional", true},
		{"wildcard star", "*", "graduate", true},
		{"wildcard all", "ALL", "graduate", true},
		{"wildcard in list", []any{"student", "all"}, "professional", true},
		{"list of strings", []string{"Student", "Graduate"}, "graduate", true},
		{"list mismatch", []any{"student"}, "graduate", false},
		{"only separators is generic", " , ", "graduate", true},
		{"substring is not a token", "postgraduate", "graduate", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesUserType(tt.itemUT, tt.selected))
		})
	}
}

func TestUserTypeTokens(t *testing.T) {
	assert.Equal(t, []string{"student", "graduate"}, UserTypeTokens(" Student ,graduate"))
	assert.Empty(t, UserTypeTokens(nil))
	assert.Empty(t, UserTypeTokens(42.0))
}
