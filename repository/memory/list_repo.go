package memory

import (
	"context"
	"slices"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

type listRepository struct {
	lists []domain.LeadList
}

// NewListRepository returns a read-only catalog of lead lists.
func NewListRepository(lists []domain.LeadList) repository.ListRepository {
	return &listRepository{lists: slices.Clone(lists)}
}

func (r *listRepository) List(ctx context.Context) ([]domain.LeadList, error) {
	return slices.Clone(r.lists), nil
}

func (r *listRepository) GetByID(ctx context.Context, id string) (*domain.LeadList, error) {
	for _, list := range r.lists {
		if list.ID == id {
			l := list
			return &l, nil
		}
	}
	return nil, domain.ErrListNotFound
}
