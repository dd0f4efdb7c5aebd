package domain

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d+\-\s()]+$`)
)

// Lead represents a sales contact with a deal value and a current stage.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Value     float64   `json:"value"`
	StageID   string    `json:"stage_id"`
	ListID    string    `json:"list_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadPatch carries the mutable lead fields. Nil fields are left unchanged.
type LeadPatch struct {
	Name    *string  `json:"name,omitempty"`
	Company *string  `json:"company,omitempty"`
	Email   *string  `json:"email,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
	Value   *float64 `json:"value,omitempty"`
	StageID *string  `json:"stage_id,omitempty"`
	ListID  *string  `json:"list_id,omitempty"`
}

// Validate checks the structural rules a lead must satisfy.
func (l *Lead) Validate() error {
	if l == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(l.Name) == "" {
		return FieldError("name", "is required")
	}
	if strings.TrimSpace(l.Company) == "" {
		return FieldError("company", "is required")
	}
	if l.Email != "" && !emailPattern.MatchString(l.Email) {
		return FieldError("email", "is invalid")
	}
	if l.Phone != "" && !phonePattern.MatchString(l.Phone) {
		return FieldError("phone", "is invalid")
	}
	if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) || l.Value < 0 {
		return FieldError("value", "must be a non-negative number")
	}
	if l.StageID == "" {
		return FieldError("stage_id", "is required")
	}
	return nil
}

// Apply merges the patch into l and validates the result. l is left untouched on error.
func (p LeadPatch) Apply(l *Lead) error {
	if l == nil {
		return ErrInvalidPayload
	}
	next := *l
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Company != nil {
		next.Company = strings.TrimSpace(*p.Company)
	}
	if p.Email != nil {
		next.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		next.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Value != nil {
		next.Value = *p.Value
	}
	if p.StageID != nil {
		next.StageID = *p.StageID
	}
	if p.ListID != nil {
		next.ListID = *p.ListID
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*l = next
	return nil
}

// ChangesStage reports whether applying p would move a lead currently in stageID.
func (p LeadPatch) ChangesStage(stageID string) bool {
	return p.StageID != nil && *p.StageID != stageID
}

// LeadList is an external grouping of leads, used for export.
type LeadList struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}
