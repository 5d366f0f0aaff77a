package content

import "slices"

// UserTypeTokens splits a raw userType (nil, string, delimited string or
// list) into lower-cased tokens, dropping blanks.
func UserTypeTokens(v any) []string {
	var tokens []string
	for _, t := range asList(v) {
		if t = lowerTrim(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// MatchesUserType reports whether an item tagged with itemUT is shown for
// the selected user type. An empty selection or an untagged item matches
// everything, as does a "*" or "all" token; otherwise the selection must be
// one of the item's tokens.
func MatchesUserType(itemUT any, selected string) bool {
	sel := lowerTrim(selected)
	if sel == "" {
		return true
	}
	tokens := UserTypeTokens(itemUT)
	if len(tokens) == 0 {
		return true
	}
	if slices.Contains(tokens, "*") || slices.Contains(tokens, "all") {
		return true
	}
	return slices.Contains(tokens, sel)
}
