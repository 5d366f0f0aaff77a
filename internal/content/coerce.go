package content

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Row is one raw record as decoded from a JSON or YAML document.
type Row map[string]any

var (
	listSep  = regexp.MustCompile(`[,;|]`)
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// rows converts a decoded document into records. Anything that is not a list
// yields no rows; list elements that are not objects become empty rows so
// they still receive defaults.
func rows(doc any) []Row {
	list, ok := doc.([]any)
	if !ok {
		if typed, ok := doc.([]Row); ok {
			return typed
		}
		if maps, ok := doc.([]map[string]any); ok {
			out := make([]Row, len(maps))
			for i, m := range maps {
				out[i] = m
			}
			return out
		}
		return nil
	}
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, asRow(v))
	}
	return out
}

func asRow(v any) Row {
	switch m := v.(type) {
	case Row:
		return m
	case map[string]any:
		return m
	}
	return Row{}
}

func (r Row) str(key string) string {
	return asString(r[key])
}

// strOr returns the trimmed field, or def when it is blank.
func (r Row) strOr(key, def string) string {
	if s := strings.TrimSpace(r.str(key)); s != "" {
		return s
	}
	return def
}

func (r Row) lower(key string) string {
	return lowerTrim(r.str(key))
}

func (r Row) list(key string) []string {
	return asList(r[key])
}

func (r Row) num(key string) float64 {
	return asNumber(r[key])
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format(time.DateOnly)
	case []any, map[string]any, Row:
		return ""
	}
	return fmt.Sprint(v)
}

// asNumber parses v as a number; anything non-finite or unparseable is 0.
func asNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// asList accepts a real list or a comma/semicolon/pipe delimited string and
// returns trimmed, non-empty entries. The result is never nil.
func asList(v any) []string {
	out := []string{}
	switch l := v.(type) {
	case []string:
		for _, s := range l {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range l {
			if s := strings.TrimSpace(asString(e)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range listSep.Split(l, -1) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug lower-cases s and collapses every run of non-alphanumerics to "-".
func Slug(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses the ISO-ish date forms found in content documents.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOr keeps s when it parses, otherwise returns def.
func dateOr(s, def string) string {
	s = strings.TrimSpace(s)
	if _, ok := ParseDate(s); ok {
		return s
	}
	return def
}
