package content

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"nextstep/internal/domain"
)

// now is swapped in tests.
var now = time.Now

const placeholderThumb = "assets/resources/thumbs/placeholder.jpg"

// UntitledResource is the title given to resources without one.
const UntitledResource = "Untitled Resource"

// NormalizeCareers converts a decoded careers document into careers.
// It never fails: malformed fields are replaced with defaults.
func NormalizeCareers(doc any) []domain.Career {
	ids := newIDAllocator("c")
	raw := rows(doc)
	out := make([]domain.Career, 0, len(raw))
	for i, r := range raw {
		c := domain.Career{
			Title:     r.strOr("title", "Untitled Role"),
			Industry:  orDefault(r.lower("industry"), domain.DefaultCategory),
			Icon:      r.strOr("icon", "bi-briefcase"),
			Education: r.strOr("education", "Varies"),
			SalaryMin: r.num("salaryMin"),
			SalaryMax: r.num("salaryMax"),
			Skills:    r.list("skills"),
		}
		c.ID = ids.assign(r.str("id"), c.Title, i)
		c.Href = r.strOr("href", "careers.html?c="+url.QueryEscape(c.ID))
		out = append(out, c)
	}
	return out
}

// NormalizeResources converts a decoded resources document.
func NormalizeResources(doc any) []domain.Resource {
	ids := newIDAllocator("res")
	raw := rows(doc)
	out := make([]domain.Resource, 0, len(raw))
	for i, r := range raw {
		res := domain.Resource{
			Title:       r.strOr("title", UntitledResource),
			Description: r.str("description"),
			Author:      r.str("author"),
			Provider:    r.str("provider"),
			URL:         r.str("url"),
			YoutubeID:   r.str("youtubeId"),
			Thumb:       r.str("thumb"),
			Minutes:     int(r.num("minutes")),
			Size:        r.str("size"),
			Tags:        r.list("tags"),
			Type:        r.lower("type"),
			UserType:    userTypeField(r["userType"]),
			Category:    orDefault(r.lower("category"), domain.DefaultCategory),
			Date:        dateOr(r.str("date"), domain.DefaultDate),
		}
		if res.Thumb == "" && res.Type != "webinar" {
			res.Thumb = placeholderThumb
		}
		res.ID = ids.assign(r.str("id"), res.Title, i)
		out = append(out, res)
	}
	return out
}

// NormalizeStories converts a decoded success-stories document.
func NormalizeStories(doc any) []domain.Story {
	ids := newIDAllocator("s")
	raw := rows(doc)
	out := make([]domain.Story, 0, len(raw))
	for i, r := range raw {
		s := domain.Story{
			Name:     r.strOr("name", "Anonymous"),
			Title:    r.str("title"),
			Domain:   orDefault(r.lower("domain"), domain.DefaultCategory),
			UserType: userTypeField(r["userType"]),
			Summary:  r.str("summary"),
			Story:    r.str("story"),
			Tags:     r.list("tags"),
			Photo:    r.str("photo"),
			Links:    r.list("links"),
		}
		year := int(r.num("year"))
		fallback := domain.DefaultDate
		if year > 0 {
			fallback = fmt.Sprintf("%04d-01-01", year)
		} else {
			year = now().Year()
		}
		s.Year = year
		s.Date = dateOr(r.str("date"), fallback)
		s.ID = ids.assign(r.str("id"), s.Name+" "+s.Title, i)
		out = append(out, s)
	}
	return out
}

// NormalizeMedia converts a decoded multimedia document.
func NormalizeMedia(doc any) []domain.MediaItem {
	ids := newIDAllocator("m")
	raw := rows(doc)
	out := make([]domain.MediaItem, 0, len(raw))
	for i, r := range raw {
		m := domain.MediaItem{
			Title:       r.strOr("title", "Untitled"),
			Speaker:     r.str("speaker"),
			Description: r.str("description"),
			Tags:        r.list("tags"),
			UserType:    userTypeField(r["userType"]),
			Category:    orDefault(r.lower("category"), domain.DefaultCategory),
			Format:      r.lower("format"),
			Date:        dateOr(r.str("date"), domain.DefaultDate),
			YoutubeID:   r.str("youtubeId"),
			AudioURL:    r.str("audioUrl"),
		}
		m.ID = ids.assign(r.str("id"), m.Title, i)
		out = append(out, m)
	}
	return out
}

// NormalizeAdmissions converts the sectioned admissions document
// {streams, timeline, interviews, resume}. Missing sections are empty.
func NormalizeAdmissions(doc any) domain.Admissions {
	sections := asRow(doc)
	return domain.Admissions{
		Streams:    normalizeStreams(sections["streams"]),
		Timeline:   normalizeTimeline(sections["timeline"]),
		Interviews: normalizeInterviews(sections["interviews"]),
		Resume:     normalizeResume(sections["resume"]),
	}
}

func normalizeStreams(doc any) []domain.Stream {
	ids := newIDAllocator("stream")
	raw := rows(doc)
	out := make([]domain.Stream, 0, len(raw))
	for i, r := range raw {
		s := domain.Stream{
			Title:          r.strOr("title", "Untitled"),
			Description:    r.str("description"),
			Icon:           r.strOr("icon", "bi-mortarboard"),
			Subjects:       r.list("subjects"),
			Tags:           r.list("tags"),
			SampleCareers:  r.list("sampleCareers"),
			CareerIndustry: r.lower("careerIndustry"),
			ChecklistURL:   r.str("checklistUrl"),
			UserType:       userTypeField(r["userType"]),
		}
		s.ID = ids.assign(r.str("id"), s.Title, i)
		out = append(out, s)
	}
	return out
}

func normalizeTimeline(doc any) []domain.TimelineStep {
	ids := newIDAllocator("abroad")
	raw := rows(doc)
	out := make([]domain.TimelineStep, 0, len(raw))
	for i, r := range raw {
		t := domain.TimelineStep{
			Title:     r.strOr("title", "Step"),
			Subtitle:  r.str("subtitle"),
			Actions:   r.list("actions"),
			Documents: r.list("documents"),
			UserType:  userTypeField(r["userType"]),
		}
		t.ID = ids.assign(r.str("id"), t.Title, i)
		out = append(out, t)
	}
	return out
}

func normalizeInterviews(doc any) []domain.InterviewTip {
	ids := newIDAllocator("interview")
	raw := rows(doc)
	out := make([]domain.InterviewTip, 0, len(raw))
	for i, r := range raw {
		iv := domain.InterviewTip{
			Title:    r.strOr("title", "Interview Tip"),
			Subtitle: r.str("subtitle"),
			Icon:     r.strOr("icon", "bi-chat-square-quote"),
			Tips:     r.list("tips"),
			Tags:     r.list("tags"),
			QAs:      []domain.QA{},
			UserType: userTypeField(r["userType"]),
		}
		for _, q := range rows(r["qas"]) {
			iv.QAs = append(iv.QAs, domain.QA{
				Q:      q.str("q"),
				Hint:   q.strOr("hint", "Think STAR"),
				Sample: q.str("sample"),
			})
		}
		iv.ID = ids.assign(r.str("id"), iv.Title, i)
		out = append(out, iv)
	}
	return out
}

func normalizeResume(doc any) []domain.ResumeSection {
	ids := newIDAllocator("resume")
	raw := rows(doc)
	out := make([]domain.ResumeSection, 0, len(raw))
	for i, r := range raw {
		s := domain.ResumeSection{
			Title:    r.strOr("title", "Section"),
			Subtitle: r.str("subtitle"),
			Summary:  r.str("summary"),
			Dos:      r.list("dos"),
			Donts:    r.list("donts"),
			Examples: []domain.Example{},
			UserType: userTypeField(r["userType"]),
		}
		for _, e := range rows(r["examples"]) {
			s.Examples = append(s.Examples, domain.Example{
				Heading: e.strOr("heading", "Example"),
				Text:    e.str("text"),
			})
		}
		s.ID = ids.assign(r.str("id"), s.Title, i)
		out = append(out, s)
	}
	return out
}

// userTypeField stores a raw userType as a lower-cased, comma-joined token
// string so every input form goes through the same matcher.
func userTypeField(v any) string {
	switch v.(type) {
	case []any, []string:
		return strings.Join(UserTypeTokens(v), ",")
	}
	return lowerTrim(asString(v))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
