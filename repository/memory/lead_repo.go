package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

// LeadOption configures a lead repository.
type LeadOption func(*leadRepository)

// WithLeads seeds the repository; leads are kept in the given order, which
// should already be most recent first.
func WithLeads(leads []domain.Lead) LeadOption {
	return func(r *leadRepository) {
		r.leads = slices.Clone(leads)
	}
}

// WithClock overrides the time source used to stamp CreatedAt.
func WithClock(now func() time.Time) LeadOption {
	return func(r *leadRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLeadIDs overrides lead id generation.
func WithLeadIDs(next func() string) LeadOption {
	return func(r *leadRepository) {
		if next != nil {
			r.nextID = next
		}
	}
}

type leadRepository struct {
	mu     sync.RWMutex
	leads  []domain.Lead
	now    func() time.Time
	nextID func() string
}

// NewLeadRepository returns an in-memory implementation of LeadRepository.
func NewLeadRepository(opts ...LeadOption) repository.LeadRepository {
	r := &leadRepository{
		now:    time.Now,
		nextID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *leadRepository) List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leads := make([]domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if filter.Match(lead) {
			leads = append(leads, lead)
		}
	}
	return filter.Window(leads), nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrLeadNotFound
	}
	lead := r.leads[idx]
	return &lead, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead == nil {
		return nil, domain.ErrInvalidPayload
	}
	created := *lead
	created.ID = r.nextID()
	created.CreatedAt = r.now()
	if err := created.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = slices.Insert(r.leads, 0, created)
	return &created, nil
}

func (r *leadRepository) Update(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrLeadNotFound
	}
	lead := r.leads[idx]
	if err := patch.Apply(&lead); err != nil {
		return nil, err
	}
	r.leads[idx] = lead
	return &lead, nil
}

func (r *leadRepository) CountByStage(ctx context.Context, stageID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, lead := range r.leads {
		if lead.StageID == stageID {
			count++
		}
	}
	return count, nil
}

func (r *leadRepository) indexOf(id string) int {
	return slices.IndexFunc(r.leads, func(l domain.Lead) bool {
		return l.ID == id
	})
}
