// Package feedback validates, drafts and exports the feedback form. Nothing
// is sent anywhere: submission only records a recent entry.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DraftName is the store draft name, giving the key nsn_feedback_draft.
const DraftName = "feedback"

// ExportFilename is the suggested name for Text output.
const ExportFilename = "Feedback.txt"

// Payload is the feedback form. Company is a honeypot and must stay empty.
type Payload struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"nsn_email"`
	Role     string    `json:"role"`
	Category string    `json:"category"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message" validate:"min=10,max=1000"`
	Company  string    `json:"-" validate:"max=0"`
	TS       time.Time `json:"ts"`
}

// ErrNoDraft is returned by LoadDraft when nothing was saved.
var ErrNoDraft = errors.New("no draft found")

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "please fix the highlighted fields: " + strings.Join(e.Fields, ", ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

func validEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToLower(f.Name)
	})
	if err := v.RegisterValidation("nsn_email", validEmail); err != nil {
		panic(err)
	}
	return v
}

// Normalize trims every text field.
func Normalize(p Payload) Payload {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Role = strings.TrimSpace(p.Role)
	p.Category = strings.TrimSpace(p.Category)
	p.Subject = strings.TrimSpace(p.Subject)
	p.Message = strings.TrimSpace(p.Message)
	p.Company = strings.TrimSpace(p.Company)
	return p
}

// Validate checks a normalized payload. A filled honeypot fails as field
// "company".
func Validate(p Payload) error {
	err := validate.Struct(Normalize(p))
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("feedback validation: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}

// DraftStore persists drafts by name.
type DraftStore interface {
	SaveDraft(ctx context.Context, name string, v any) error
	LoadDraft(ctx context.Context, name string, v any) (bool, error)
}

// RecentPusher records a recent-activity entry.
type RecentPusher interface {
	PushRecent(ctx context.Context, label, href string) error
}

// SaveDraft stores the normalized payload, stamping it if unstamped. Drafts
// are not validated.
func SaveDraft(ctx context.Context, ds DraftStore, p Payload) error {
	p = Normalize(p)
	if p.TS.IsZero() {
		p.TS = time.Now()
	}
	return ds.SaveDraft(ctx, DraftName, p)
}

// LoadDraft returns the saved draft or ErrNoDraft.
func LoadDraft(ctx context.Context, ds DraftStore) (Payload, error) {
	var p Payload
	found, err := ds.LoadDraft(ctx, DraftName, &p)
	if err != nil {
		return Payload{}, err
	}
	if !found {
		return Payload{}, ErrNoDraft
	}
	return p, nil
}

// Submit validates p and records the simulated submission as recent
// activity.
func Submit(ctx context.Context, rp RecentPusher, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return rp.PushRecent(ctx, "Submitted Feedback (Simulated)", "feedback.html")
}

// Text renders the plain-text export.
func Text(p Payload) string {
	ts := p.TS
	if ts.IsZero() {
		ts = time.Now()
	}
	lines := []string{
		"NextStep Navigator — Feedback",
		"Timestamp: " + ts.Format(time.RFC1123),
		"",
		"Name: " + p.Name,
		"Email: " + p.Email,
		"Role: " + p.Role,
		"Category: " + p.Category,
		"Subject: " + p.Subject,
		"",
		"Message:",
		p.Message,
	}
	return strings.Join(lines, "\n")
}
