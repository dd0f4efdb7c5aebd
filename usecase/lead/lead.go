package lead

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

// ListSummary is a lead list with its derived lead count.
type ListSummary struct {
	domain.LeadList
	Count int `json:"count"`
}

type UseCase struct {
	leads  repository.LeadRepository
	lists  repository.ListRepository
	logger *zap.Logger
}

func New(leads repository.LeadRepository, lists repository.ListRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		leads:  leads,
		lists:  lists,
		logger: logger,
	}
}

func (uc *UseCase) Search(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	if filter.MinValue != nil && filter.MaxValue != nil && *filter.MinValue > *filter.MaxValue {
		return nil, domain.FieldError("min_value", "must not exceed max_value")
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		return nil, domain.FieldError("created_from", "must not be after created_to")
	}
	return uc.leads.List(ctx, filter)
}

func (uc *UseCase) Lists(ctx context.Context) ([]ListSummary, error) {
	lists, err := uc.lists.List(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := uc.leads.List(ctx, repository.LeadFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(lists))
	for _, l := range leads {
		if l.ListID != "" {
			counts[l.ListID]++
		}
	}

	out := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		out = append(out, ListSummary{LeadList: list, Count: counts[list.ID]})
	}
	return out, nil
}
