package query

import (
	"nextstep/internal/domain"
)

func titleOrders[T any](title func(T) string) map[string]Order[T] {
	return map[string]Order[T]{
		SortAZ: {Text: title},
		SortZA: {Text: title, Desc: true},
	}
}

func withDateOrders[T any](m map[string]Order[T], date func(T) string) map[string]Order[T] {
	m[SortNewest] = Order[T]{Date: date, Desc: true}
	m[SortOldest] = Order[T]{Date: date}
	return m
}

func join(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Careers is the career bank listing: multi-select industries, salary range
// and salary midpoint sorts.
func Careers() Config[domain.Career] {
	sorts := titleOrders(func(c domain.Career) string { return c.Title })
	sorts[SortSalaryAsc] = Order[domain.Career]{Number: domain.Career.SalaryMid}
	sorts[SortSalaryDesc] = Order[domain.Career]{Number: domain.Career.SalaryMid, Desc: true}
	return Config[domain.Career]{
		Name: "careers",
		Text: func(c domain.Career) []string {
			return join([]string{c.Title, c.Industry, c.Education}, c.Skills)
		},
		Categories: map[string]func(domain.Career) string{
			FilterIndustry: func(c domain.Career) string { return c.Industry },
		},
		Range:       func(c domain.Career) (float64, float64) { return c.SalaryMin, c.SalaryMax },
		Sorts:       sorts,
		DefaultSort: SortAZ,
		PageSize:    12,
	}
}

// Resources is the resource library listing.
func Resources() Config[domain.Resource] {
	return Config[domain.Resource]{
		Name: "resources",
		Text: func(r domain.Resource) []string {
			return join([]string{r.Title, r.Description, r.Author, r.Provider, r.Category, r.UserType}, r.Tags)
		},
		Categories: map[string]func(domain.Resource) string{
			FilterCategory: func(r domain.Resource) string { return r.Category },
			FilterType:     func(r domain.Resource) string { return r.Type },
		},
		UserType:    func(r domain.Resource) string { return r.UserType },
		Sorts:       withDateOrders(titleOrders(func(r domain.Resource) string { return r.Title }), func(r domain.Resource) string { return r.Date }),
		DefaultSort: SortNewest,
		PageSize:    9,
	}
}

// Stories is the success stories listing. Title sorts use the person's name.
func Stories() Config[domain.Story] {
	return Config[domain.Story]{
		Name: "stories",
		Text: func(s domain.Story) []string {
			return join([]string{s.Name, s.Title, s.Summary, s.Story}, s.Tags)
		},
		Categories: map[string]func(domain.Story) string{
			FilterDomain: func(s domain.Story) string { return s.Domain },
		},
		UserType:    func(s domain.Story) string { return s.UserType },
		Sorts:       withDateOrders(titleOrders(func(s domain.Story) string { return s.Name }), func(s domain.Story) string { return s.Date }),
		DefaultSort: SortNewest,
		PageSize:    9,
	}
}

// Media is the multimedia listing.
func Media() Config[domain.MediaItem] {
	return Config[domain.MediaItem]{
		Name: "multimedia",
		Text: func(m domain.MediaItem) []string {
			return join([]string{m.Title, m.Speaker, m.Description}, m.Tags)
		},
		Categories: map[string]func(domain.MediaItem) string{
			FilterCategory: func(m domain.MediaItem) string { return m.Category },
			FilterFormat:   func(m domain.MediaItem) string { return m.Format },
		},
		UserType:    func(m domain.MediaItem) string { return m.UserType },
		Sorts:       withDateOrders(titleOrders(func(m domain.MediaItem) string { return m.Title }), func(m domain.MediaItem) string { return m.Date }),
		DefaultSort: SortNewest,
		PageSize:    9,
	}
}

// Streams lists admissions streams, unpaginated.
func Streams() Config[domain.Stream] {
	return Config[domain.Stream]{
		Name: "streams",
		Text: func(s domain.Stream) []string {
			return join([]string{s.Title, s.Description}, s.Subjects, s.Tags, s.SampleCareers)
		},
		UserType:    func(s domain.Stream) string { return s.UserType },
		Sorts:       titleOrders(func(s domain.Stream) string { return s.Title }),
		DefaultSort: SortDefault,
	}
}

// Timeline lists study-abroad steps. The timeline keeps its authored order.
func Timeline() Config[domain.TimelineStep] {
	return Config[domain.TimelineStep]{
		Name: "timeline",
		Text: func(t domain.TimelineStep) []string {
			return join([]string{t.Title, t.Subtitle}, t.Actions, t.Documents)
		},
		UserType:    func(t domain.TimelineStep) string { return t.UserType },
		DefaultSort: SortDefault,
	}
}

// Interviews lists interview tip cards.
func Interviews() Config[domain.InterviewTip] {
	return Config[domain.InterviewTip]{
		Name: "interviews",
		Text: func(iv domain.InterviewTip) []string {
			out := join([]string{iv.Title, iv.Subtitle}, iv.Tips, iv.Tags)
			for _, qa := range iv.QAs {
				out = append(out, qa.Q, qa.Sample, qa.Hint)
			}
			return out
		},
		UserType:    func(iv domain.InterviewTip) string { return iv.UserType },
		Sorts:       titleOrders(func(iv domain.InterviewTip) string { return iv.Title }),
		DefaultSort: SortDefault,
	}
}

// ResumeSections lists resume guide sections.
func ResumeSections() Config[domain.ResumeSection] {
	return Config[domain.ResumeSection]{
		Name: "resume",
		Text: func(r domain.ResumeSection) []string {
			out := join([]string{r.Title, r.Subtitle, r.Summary}, r.Dos, r.Donts)
			for _, e := range r.Examples {
				out = append(out, e.Heading, e.Text)
			}
			return out
		},
		UserType:    func(r domain.ResumeSection) string { return r.UserType },
		Sorts:       titleOrders(func(r domain.ResumeSection) string { return r.Title }),
		DefaultSort: SortDefault,
	}
}
