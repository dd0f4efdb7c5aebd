package repository

import (
	"context"
	"strings"
	"time"

	"github.com/fastygo/salesboard/domain"
)

type LeadFilter struct {
	Search      string
	StageID     string
	ListID      string
	MinValue    *float64
	MaxValue    *float64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// Match reports whether lead satisfies every set criterion. Date bounds are
// inclusive calendar days.
func (f LeadFilter) Match(lead domain.Lead) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(lead.Name), term) &&
			!strings.Contains(strings.ToLower(lead.Company), term) {
			return false
		}
	}
	if f.StageID != "" && lead.StageID != f.StageID {
		return false
	}
	if f.ListID != "" && lead.ListID != f.ListID {
		return false
	}
	if f.MinValue != nil && lead.Value < *f.MinValue {
		return false
	}
	if f.MaxValue != nil && lead.Value > *f.MaxValue {
		return false
	}
	created := truncateDay(lead.CreatedAt)
	if f.CreatedFrom != nil && created.Before(truncateDay(*f.CreatedFrom)) {
		return false
	}
	if f.CreatedTo != nil && created.After(truncateDay(*f.CreatedTo)) {
		return false
	}
	return true
}

// Window applies Offset and Limit to an already filtered slice.
func (f LeadFilter) Window(leads []domain.Lead) []domain.Lead {
	if f.Offset > 0 {
		if f.Offset >= len(leads) {
			return []domain.Lead{}
		}
		leads = leads[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(leads) {
		leads = leads[:f.Limit]
	}
	return leads
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LeadRepository owns the lead collection, most recent first. It never
// checks stage references; callers supply live stage ids.
type LeadRepository interface {
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	Update(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error)
	CountByStage(ctx context.Context, stageID string) (int, error)
}
