package repository

import (
	"context"

	"github.com/fastygo/salesboard/domain"
)

type ListRepository interface {
	List(ctx context.Context) ([]domain.LeadList, error)
	GetByID(ctx context.Context, id string) (*domain.LeadList, error)
}
