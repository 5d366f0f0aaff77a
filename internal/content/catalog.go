package content

import (
	"context"

	"nextstep/internal/domain"
)

// Document names under the content base.
const (
	CareersDoc    = "careers.json"
	ResourcesDoc  = "resources.json"
	StoriesDoc    = "stories.json"
	MediaDoc      = "multimedia.json"
	AdmissionsDoc = "admissions.json"
	QuizDoc       = "quiz.json"
)

// Catalog holds every normalized collection. Notices collects the inline
// messages of documents that fell back.
type Catalog struct {
	Careers    []domain.Career
	Resources  []domain.Resource
	Stories    []domain.Story
	Media      []domain.MediaItem
	Admissions domain.Admissions
	Notices    map[string]string
}

// LoadCatalog fetches and normalizes all content documents. It never fails;
// careers and resources fall back to built-in rows, the rest to empty.
func LoadCatalog(ctx context.Context, l *Loader) *Catalog {
	c := &Catalog{Notices: make(map[string]string)}
	note := func(name, notice string) {
		if notice != "" {
			c.Notices[name] = notice
		}
	}

	doc, notice := l.Load(ctx, CareersDoc, FallbackCareers())
	c.Careers = NormalizeCareers(doc)
	note(CareersDoc, notice)

	doc, notice = l.Load(ctx, ResourcesDoc, FallbackResources())
	c.Resources = NormalizeResources(doc)
	note(ResourcesDoc, notice)

	doc, notice = l.Load(ctx, StoriesDoc, nil)
	c.Stories = NormalizeStories(doc)
	note(StoriesDoc, notice)

	doc, notice = l.Load(ctx, MediaDoc, nil)
	c.Media = NormalizeMedia(doc)
	note(MediaDoc, notice)

	doc, notice = l.Load(ctx, AdmissionsDoc, nil)
	c.Admissions = NormalizeAdmissions(doc)
	note(AdmissionsDoc, notice)

	return c
}

// FallbackCareers is the offline career set.
func FallbackCareers() []any {
	return []any{
		map[string]any{"id": "se", "title": "Software Engineer", "industry": "Technology", "icon": "bi-code-slash", "href": "careers.html?c=se"},
		map[string]any{"id": "ds", "title": "Data Scientist", "industry": "Technology", "icon": "bi-diagram-3", "href": "careers.html?c=ds"},
		map[string]any{"id": "pm", "title": "Product Manager", "industry": "Business", "icon": "bi-kanban", "href": "careers.html?c=pm"},
		map[string]any{"id": "ux", "title": "UX Designer", "industry": "Design", "icon": "bi-palette", "href": "careers.html?c=ux"},
		map[string]any{"id": "rn", "title": "Registered Nurse", "industry": "Healthcare", "icon": "bi-heart-pulse", "href": "careers.html?c=rn"},
		map[string]any{"id": "me", "title": "Mechanical Engineer", "industry": "Engineering", "icon": "bi-gear", "href": "careers.html?c=me"},
		map[string]any{"id": "ba", "title": "Business Analyst", "industry": "Business", "icon": "bi-graph-up", "href": "careers.html?c=ba"},
		map[string]any{"id": "gd", "title": "Graphic Designer", "industry": "Design", "icon": "bi-brush", "href": "careers.html?c=gd"},
	}
}

// FallbackResources is the offline resource set.
func FallbackResources() []any {
	return []any{
		map[string]any{"id": "f-1", "title": "Time Management for Students", "description": "Strategies to balance studies and life.", "type": "ebook", "userType": "student", "category": "skills", "url": "#", "date": "2025-01-07", "size": "1.1 MB", "tags": []any{"productivity"}},
		map[string]any{"id": "f-2", "title": "Resume Checklist", "description": "Everything recruiters look for.", "type": "checklist", "userType": "graduate", "category": "resume", "url": "#", "date": "2025-03-01", "size": "320 KB", "tags": []any{"resume", "ATS"}},
		map[string]any{"id": "f-3", "title": "Interview Q&A Masterclass", "description": "Behavioral & situational Qs with STAR.", "type": "article", "userType": "graduate", "category": "interviewing", "url": "#", "date": "2025-02-11", "tags": []any{"STAR method"}},
		map[string]any{"id": "f-4", "title": "Building Your LinkedIn Brand", "description": "Make a profile that gets noticed.", "type": "webinar", "youtubeId": "dQw4w9WgXcQ", "userType": "professional", "category": "careers", "date": "2024-12-10", "minutes": 55, "tags": []any{"linkedin", "networking"}},
		map[string]any{"id": "f-5", "title": "Study Abroad Starter", "description": "Scholarships and timelines.", "type": "article", "userType": "student", "category": "study-abroad", "url": "#", "date": "2024-11-05", "tags": []any{"scholarships"}},
	}
}
