package domain

// Item is implemented by every normalized content record.
type Item interface {
	// ItemID is the identifier, unique within the record's domain.
	ItemID() string
	// Label is the display string used for bookmarks and recents.
	Label() string
}

// Sentinel defaults substituted during normalization.
const (
	DefaultCategory = "general"
	DefaultDate     = "2000-01-01"
)

// Career is a role in the career bank.
type Career struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Industry  string   `json:"industry"`
	Icon      string   `json:"icon"`
	Education string   `json:"education"`
	SalaryMin float64  `json:"salaryMin"`
	SalaryMax float64  `json:"salaryMax"`
	Skills    []string `json:"skills"`
	Href      string   `json:"href,omitempty"`
}

func (c Career) ItemID() string { return c.ID }
func (c Career) Label() string  { return c.Title }

// SalaryMid is the midpoint of the salary range, used for salary sorts.
func (c Career) SalaryMid() float64 { return (c.SalaryMin + c.SalaryMax) / 2 }

// Resource is an article, e-book, checklist or webinar.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Provider    string   `json:"provider"`
	URL         string   `json:"url"`
	YoutubeID   string   `json:"youtubeId,omitempty"`
	Thumb       string   `json:"thumb,omitempty"`
	Minutes     int      `json:"minutes,omitempty"`
	Size        string   `json:"size,omitempty"`
	Tags        []string `json:"tags"`
	Type        string   `json:"type"`
	UserType    string   `json:"userType"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
}

func (r Resource) ItemID() string { return r.ID }
func (r Resource) Label() string  { return r.Title }

// Story is a success story.
type Story struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Domain   string   `json:"domain"`
	UserType string   `json:"userType"`
	Year     int      `json:"year"`
	Date     string   `json:"date"`
	Summary  string   `json:"summary"`
	Story    string   `json:"story"`
	Tags     []string `json:"tags"`
	Photo    string   `json:"photo,omitempty"`
	Links    []string `json:"links,omitempty"`
}

func (s Story) ItemID() string { return s.ID }

func (s Story) Label() string {
	if s.Title != "" {
		return s.Name + " — " + s.Title
	}
	return s.Name
}

// MediaItem is a video or podcast episode.
type MediaItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Speaker     string   `json:"speaker"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	UserType    string   `json:"userType"`
	Category    string   `json:"category"`
	Format      string   `json:"format"`
	Date        string   `json:"date"`
	YoutubeID   string   `json:"youtubeId,omitempty"`
	AudioURL    string   `json:"audioUrl,omitempty"`
}

func (m MediaItem) ItemID() string { return m.ID }
func (m MediaItem) Label() string  { return m.Title }

// Stream is an academic stream on the admissions page.
type Stream struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Icon           string   `json:"icon"`
	Subjects       []string `json:"subjects"`
	Tags           []string `json:"tags"`
	SampleCareers  []string `json:"sampleCareers"`
	CareerIndustry string   `json:"careerIndustry,omitempty"`
	ChecklistURL   string   `json:"checklistUrl,omitempty"`
	UserType       string   `json:"userType"`
}

func (s Stream) ItemID() string { return s.ID }
func (s Stream) Label() string  { return s.Title }

// TimelineStep is one step of the study-abroad timeline.
type TimelineStep struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Actions   []string `json:"actions"`
	Documents []string `json:"documents"`
	UserType  string   `json:"userType"`
}

func (t TimelineStep) ItemID() string { return t.ID }
func (t TimelineStep) Label() string  { return t.Title }

// QA is a common interview question with a hint and a sample answer.
type QA struct {
	Q      string `json:"q"`
	Hint   string `json:"hint"`
	Sample string `json:"sample"`
}

// InterviewTip groups interview tips and common questions.
type InterviewTip struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Icon     string   `json:"icon"`
	Tips     []string `json:"tips"`
	Tags     []string `json:"tags"`
	QAs      []QA     `json:"qas"`
	UserType string   `json:"userType"`
}

func (i InterviewTip) ItemID() string { return i.ID }
func (i InterviewTip) Label() string  { return i.Title }

// Example is a worked resume example.
type Example struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ResumeSection is one accordion section of the resume guide.
type ResumeSection struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Summary  string    `json:"summary"`
	Dos      []string  `json:"dos"`
	Donts    []string  `json:"donts"`
	Examples []Example `json:"examples"`
	UserType string    `json:"userType"`
}

func (r ResumeSection) ItemID() string { return r.ID }
func (r ResumeSection) Label() string  { return r.Title }

// Admissions is the sectioned admissions document.
type Admissions struct {
	Streams    []Stream        `json:"streams"`
	Timeline   []TimelineStep  `json:"timeline"`
	Interviews []InterviewTip  `json:"interviews"`
	Resume     []ResumeSection `json:"resume"`
}
