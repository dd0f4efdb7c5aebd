package repository

import (
	"context"

	"github.com/fastygo/salesboard/domain"
)

// StageRepository owns the ordered stage collection. Implementations keep
// stage orders a dense 1..N sequence after every mutation.
type StageRepository interface {
	List(ctx context.Context) ([]domain.Stage, error)
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	Create(ctx context.Context, title string) (*domain.Stage, error)
	Update(ctx context.Context, id string, patch domain.StagePatch) (*domain.Stage, error)
	Delete(ctx context.Context, id string) error
	// Reorder swaps the stage at index with its neighbour in dir. It reports
	// false without mutating anything when the swap would leave the range.
	Reorder(ctx context.Context, index int, dir domain.Direction) (bool, error)
}
