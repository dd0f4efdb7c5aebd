package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

// DeleteGuard reports whether a stage is still referenced and must not be deleted.
type DeleteGuard func(ctx context.Context, stageID string) (bool, error)

// StageOption configures a stage repository.
type StageOption func(*stageRepository)

// WithStages seeds the repository. Orders are re-derived from slice position.
func WithStages(stages []domain.Stage) StageOption {
	return func(r *stageRepository) {
		r.stages = slices.Clone(stages)
	}
}

// WithDeleteGuard makes Delete refuse referenced stages with a precondition error.
func WithDeleteGuard(guard DeleteGuard) StageOption {
	return func(r *stageRepository) {
		r.guard = guard
	}
}

// WithColorPicker overrides the random palette choice for new stages.
func WithColorPicker(pick func() string) StageOption {
	return func(r *stageRepository) {
		if pick != nil {
			r.pickColor = pick
		}
	}
}

// WithStageIDs overrides stage id generation.
func WithStageIDs(next func() string) StageOption {
	return func(r *stageRepository) {
		if next != nil {
			r.nextID = next
		}
	}
}

type stageRepository struct {
	mu        sync.RWMutex
	stages    []domain.Stage
	guard     DeleteGuard
	pickColor func() string
	nextID    func() string
}

// NewStageRepository returns an in-memory implementation of StageRepository.
func NewStageRepository(opts ...StageOption) repository.StageRepository {
	r := &stageRepository{
		pickColor: domain.RandomColor,
		nextID: func() string {
			return "stage-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	renumber(r.stages)
	return r
}

func (r *stageRepository) List(ctx context.Context) ([]domain.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.stages), nil
}

func (r *stageRepository) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrStageNotFound
	}
	stage := r.stages[idx]
	return &stage, nil
}

func (r *stageRepository) Create(ctx context.Context, title string) (*domain.Stage, error) {
	title, err := domain.NormalizeStageTitle(title)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stage := domain.Stage{
		ID:    r.nextID(),
		Title: title,
		Order: len(r.stages) + 1,
		Color: r.pickColor(),
	}
	r.stages = append(r.stages, stage)
	return &stage, nil
}

func (r *stageRepository) Update(ctx context.Context, id string, patch domain.StagePatch) (*domain.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrStageNotFound
	}
	stage := r.stages[idx]
	if err := patch.Apply(&stage); err != nil {
		return nil, err
	}
	r.stages[idx] = stage
	return &stage, nil
}

func (r *stageRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrStageNotFound
	}
	if r.guard != nil {
		inUse, err := r.guard(ctx, id)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "stage delete guard failed", err)
		}
		if inUse {
			return domain.ErrStageReferenced
		}
	}

	r.stages = slices.Delete(r.stages, idx, idx+1)
	renumber(r.stages)
	return nil
}

func (r *stageRepository) Reorder(ctx context.Context, index int, dir domain.Direction) (bool, error) {
	if !dir.Valid() {
		return false, domain.ErrInvalidDirection
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target := index + dir.Offset()
	if index < 0 || index >= len(r.stages) || target < 0 || target >= len(r.stages) {
		return false, nil
	}

	r.stages[index], r.stages[target] = r.stages[target], r.stages[index]
	renumber(r.stages)
	return true, nil
}

func (r *stageRepository) indexOf(id string) int {
	return slices.IndexFunc(r.stages, func(s domain.Stage) bool {
		return s.ID == id
	})
}

func renumber(stages []domain.Stage) {
	for i := range stages {
		stages[i].Order = i + 1
	}
}
